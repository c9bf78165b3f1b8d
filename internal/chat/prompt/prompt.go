package prompt

import (
	"fmt"

	"github.com/akolanti/pdfchat/internal/config"
)

const (
	AnalysisTruncationNotice = "\n\n[Content truncated for analysis...]"
	QuestionTruncationNotice = "\n[Content continues...]"
)

const analysisTemplate = `I have uploaded a PDF document titled "%s". Please analyze the following text content and provide:

1. **📋 Document Summary**: A comprehensive overview of the main topics and themes
2. **🔑 Key Points**: The most important information, findings, or arguments
3. **📊 Document Structure**: How the content is organized
4. **❓ Potential Questions**: Suggest 4-5 interesting questions I could ask about this document

Here is the extracted text from the PDF:

---
%s
---

Please provide a detailed analysis in a well-formatted response using markdown. Be thorough and insightful.`

const questionTemplate = `Based on the PDF document "%s" that I uploaded, please answer the following question. Use the document content as your primary source of information.

PDF Content Context:
%s

User Question: %s

Please provide a detailed, accurate answer based on the PDF content. If the question cannot be answered from the document, please let me know and offer to help with related topics that are covered in the document. Format your response using markdown for better readability.`

var suggestedQuestions = []string{
	"What are the main conclusions of this document?",
	"Can you summarize the key findings in bullet points?",
	"What are the most important points I should know?",
	"Are there any recommendations or action items mentioned?",
	"What is the overall purpose of this document?",
}

// Builder turns document text into bounded prompts. Limits count characters
// (runes), not bytes or tokens.
type Builder struct {
	AnalysisLimit int
	QuestionLimit int
}

func NewBuilder(settings config.PromptSettings) Builder {
	return Builder{
		AnalysisLimit: settings.AnalysisCharLimit,
		QuestionLimit: settings.QuestionCharLimit,
	}
}

func (b Builder) Analysis(docName, text string) string {
	excerpt, cut := Truncate(text, b.AnalysisLimit)
	if cut {
		excerpt += AnalysisTruncationNotice
	}
	return fmt.Sprintf(analysisTemplate, docName, excerpt)
}

func (b Builder) Question(docName, text, question string) string {
	excerpt, cut := Truncate(text, b.QuestionLimit)
	if cut {
		excerpt += QuestionTruncationNotice
	}
	return fmt.Sprintf(questionTemplate, docName, excerpt, question)
}

// Truncate is a hard prefix cut at limit characters.
func Truncate(text string, limit int) (string, bool) {
	if limit < 0 {
		limit = 0
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i], true
		}
		n++
	}
	return text, false
}

func SuggestedQuestions() []string {
	out := make([]string, len(suggestedQuestions))
	copy(out, suggestedQuestions)
	return out
}

package chat

import "fmt"

const demoQuoteLimit = 100

const demoTemplate = "**🆓 Free AI Assistant - PDF Analysis**\n\n" +
	"I can see you're asking: \"%s\"\n\n" +
	"To get real AI analysis of your PDF using **FREE APIs**, please get an API key from one of these providers:\n\n" +
	"## 🚀 **Recommended Free Options:**\n\n" +
	"### **1. Groq (BEST FREE OPTION)**\n" +
	"- ✅ **Completely FREE** with generous limits\n" +
	"- ✅ **Very fast responses** (faster than GPT-4)\n" +
	"- ✅ **High-quality Llama models**\n" +
	"- 🔗 Get your free key: [console.groq.com](https://console.groq.com)\n" +
	"- 🔑 Key format: `gsk_...`\n\n" +
	"### **2. Hugging Face**\n" +
	"- ✅ **Free tier available**\n" +
	"- ✅ **Multiple model options**\n" +
	"- 🔗 Get your free key: [huggingface.co/settings/tokens](https://huggingface.co/settings/tokens)\n" +
	"- 🔑 Key format: `hf_...`\n\n" +
	"### **3. Cohere**\n" +
	"- ✅ **Free trial credits**\n" +
	"- ✅ **Good for text analysis**\n" +
	"- 🔗 Get your free key: [dashboard.cohere.ai](https://dashboard.cohere.ai)\n" +
	"- 🔑 Key format: `co-...`\n\n" +
	"## 🎯 **How to Use:**\n" +
	"1. **Send your free API key** in the `X-Provider-Key` header (or `--key` on the command line)\n" +
	"2. **Ask your question again** to get detailed AI analysis\n\n" +
	"## 💡 **What I can do with your PDF:**\n" +
	"- 📊 **Comprehensive document analysis**\n" +
	"- 📝 **Detailed summaries and key points**\n" +
	"- ❓ **Answer specific questions about content**\n" +
	"- 🔍 **Find and explain complex topics**\n" +
	"- 💡 **Provide insights and recommendations**\n" +
	"- 📋 **Extract action items and conclusions**\n\n" +
	"**Your PDF is ready** - just add a free API key to start the intelligent conversation! 🚀\n\n" +
	"*Tip: Groq is recommended as it's completely free with no credit limits and very fast!*"

// DemoResponse is the canned answer when no credential is configured.
func DemoResponse(userMessage string) string {
	return fmt.Sprintf(demoTemplate, quote(userMessage))
}

func quote(s string) string {
	runes := []rune(s)
	if len(runes) <= demoQuoteLimit {
		return s
	}
	return string(runes[:demoQuoteLimit]) + "..."
}

package adapter

import (
	"fmt"
	"time"

	"github.com/akolanti/pdfchat/internal/api"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:       string(job.Status),
		Step:         string(job.CurrentStep),
		TurnResponse: ToTurnResponse(job),
	}

	return api.JobResponse{
		Id:        job.Id,
		SessionId: job.SessionId,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

// ToTurnResponse is nil until the turn has a reply.
func ToTurnResponse(job jobModel.Job) *api.TurnResponse {
	if job.JobPayload.Answer == "" {
		return nil
	}
	return &api.TurnResponse{
		Kind:      string(job.JobType),
		Question:  job.JobPayload.Question,
		Answer:    job.JobPayload.Answer,
		MessageId: job.JobPayload.MessageId,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		SessionId: "",
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}

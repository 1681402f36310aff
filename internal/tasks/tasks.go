package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeNorms     = "lexbrain:norms"
	TypeSentences = "lexbrain:sentences"
)

type normsTaskPayload struct {
	NormType string
}

func NewNormsTask(normType string) (*asynq.Task, error) {
	payload, err := json.Marshal(normsTaskPayload{NormType: normType})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNorms, payload), nil
}

type sentencesTaskPayload struct {
	ForceChunking bool
}

func NewSentencesTask(forceChunking bool) (*asynq.Task, error) {
	payload, err := json.Marshal(sentencesTaskPayload{ForceChunking: forceChunking})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSentences, payload), nil
}

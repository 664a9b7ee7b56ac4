package dialogue

import (
	"encoding/json"
	"fmt"
	"time"
)

// envelope is the persisted wire form of a Message: a kind tag plus the
// kind-specific payload.
type envelope struct {
	ID        string          `json:"id"`
	Seq       int64           `json:"seq"`
	Timestamp time.Time       `json:"timestamp"`
	Kind      Kind            `json:"kind"`
	Flagged   bool            `json:"flagged,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// Encode serializes a message for storage.
func Encode(m Message) ([]byte, error) {
	payload, err := json.Marshal(m.Body)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", m.Kind(), err)
	}
	return json.Marshal(envelope{
		ID:        m.ID,
		Seq:       m.Seq,
		Timestamp: m.Timestamp,
		Kind:      m.Kind(),
		Flagged:   m.Flagged,
		Payload:   payload,
	})
}

// Decode deserializes a stored message, dispatching on the kind tag.
// Every Kind constant has a case here; an unknown tag is an error, not
// a silent skip, so schema drift surfaces immediately.
func Decode(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Message{}, fmt.Errorf("decode envelope: %w", err)
	}

	var body Body
	var err error
	switch env.Kind {
	case KindCoach:
		body, err = decodePayload[CoachRemark](env.Payload)
	case KindQuestion:
		body, err = decodePayload[Question](env.Payload)
	case KindUserAnswer:
		body, err = decodePayload[UserAnswer](env.Payload)
	case KindFeedback:
		body, err = decodePayload[Feedback](env.Payload)
	case KindUserQuestion:
		body, err = decodePayload[UserQuestion](env.Payload)
	case KindCoachResponse:
		body, err = decodePayload[CoachResponse](env.Payload)
	case KindProbeQuestion:
		body, err = decodePayload[ProbeQuestion](env.Payload)
	case KindProbeResponse:
		body, err = decodePayload[ProbeResponse](env.Payload)
	case KindProbeEvaluation:
		body, err = decodePayload[ProbeEvaluation](env.Payload)
	default:
		return Message{}, fmt.Errorf("decode: unknown message kind %q", env.Kind)
	}
	if err != nil {
		return Message{}, fmt.Errorf("decode %s payload: %w", env.Kind, err)
	}

	return Message{
		ID:        env.ID,
		Seq:       env.Seq,
		Timestamp: env.Timestamp,
		Flagged:   env.Flagged,
		Body:      body,
	}, nil
}

func decodePayload[T Body](raw json.RawMessage) (Body, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

package kafka_test

import (
	"testing"

	"spacy/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func TestToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:     "res-1",
		Value:   payload{Type: "reservation.confirmed", ID: "res-1"},
		Headers: map[string]string{"event-type": "reservation.confirmed"},
	}

	encoded, err := msg.ToKafkaMessage("reservation")
	require.NoError(t, err)

	assert.Equal(t, "reservation", encoded.Topic)
	assert.Equal(t, []byte("res-1"), encoded.Key)
	assert.JSONEq(t, `{"type":"reservation.confirmed","id":"res-1"}`, string(encoded.Value))
	assert.Equal(t, "reservation.confirmed", kafka.Header(encoded, "event-type"))
	assert.Empty(t, kafka.Header(encoded, "missing"))

	decoded, err := kafka.Decode[payload](encoded)
	require.NoError(t, err)
	assert.Equal(t, payload{Type: "reservation.confirmed", ID: "res-1"}, decoded)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := kafka.Decode[payload](kafkaGo.Message{Value: []byte("{")})

	assert.Error(t, err)
}

func TestToKafkaMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage("reservation")

	assert.Error(t, err)
}

package push

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"
)

// FCMSender sends data-only FCM messages. Clients render the notification
// themselves from the data payload, so the message carries no notification
// block.
type FCMSender struct {
	Client *messaging.Client
}

func NewFCMSender(client *messaging.Client) *FCMSender {
	return &FCMSender{Client: client}
}

func (s *FCMSender) Send(ctx context.Context, token, targetUID, title, body, msgType string, data map[string]string) error {
	payload := map[string]string{
		"title":     title,
		"body":      body,
		"type":      msgType,
		"targetUid": targetUID,
	}
	for k, v := range data {
		payload[k] = v
	}

	message := &messaging.Message{
		Token: token,
		Data:  payload,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					ContentAvailable: true,
				},
			},
		},
	}

	response, err := s.Client.Send(ctx, message)
	if err != nil {
		return err
	}
	log.Printf("push sent to %s: %s", targetUID, response)
	return nil
}

package emailsending

import (
	"errors"

	httpclient "github.com/Jore52/Notificador-RSU/pkg/http-client"
)

type SendEmailReq struct {
	To          []string `json:"to"`
	Subject     string   `json:"subject"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments"`
}

// SmtpBridgeClient sends emails through the smtp-bridge service. It is the
// mail sender collaborator used by the notification scheduler.
type SmtpBridgeClient struct {
	httpClient *httpclient.ClientConfig
}

func NewSmtpBridgeClient(clientConfig *httpclient.ClientConfig) *SmtpBridgeClient {
	return &SmtpBridgeClient{
		httpClient: clientConfig,
	}
}

func (c *SmtpBridgeClient) Send(to string, subject string, body string, attachments []string) error {
	if c.httpClient == nil || c.httpClient.RootURL == "" {
		return errors.New("connection to smtp bridge not initialized")
	}

	sendEmailReq := SendEmailReq{
		To:          []string{to},
		Subject:     subject,
		Content:     body,
		Attachments: attachments,
	}
	resp, err := c.httpClient.RunHTTPcall("/send-email", sendEmailReq)
	if err == nil && resp != nil {
		errMsg, hasError := resp["error"]
		if hasError {
			err = errors.New(errMsg.(string))
		}
	}
	return err
}

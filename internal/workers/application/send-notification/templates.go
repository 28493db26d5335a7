// internal/workers/application/send-notification/templates.go
package sendnotification

import (
	"fmt"
	"strings"
)

type template struct {
	Subject string
	Body    string
	// Staff templates go to the configured staff inbox instead of the recipient.
	Staff bool
}

var templates = map[string]template{
	TypeApplicationReceived: {
		Subject: "We received your application",
		Body: "Hello {{applicantName}}, your {{applicationType}} application {{applicationId}} has been received. " +
			"Please gather the documents on your checklist so we can begin review.",
	},
	TypeApplicationStatusUpdated: {
		Subject: "Your application status changed to {{status}}",
		Body:    "Hello {{applicantName}}, application {{applicationId}} is now {{status}}. {{notes}}",
	},
	TypeDocumentCompleted: {
		Subject: "Document received: {{documentName}}",
		Body:    "We recorded {{documentName}} for application {{applicationId}}. Progress: {{progressPercentage}}%.",
	},
	TypeContactAcknowledgement: {
		Subject: "Thanks for contacting {{organization}}",
		Body:    "Hello {{name}}, we received your message and will reply within two business days. Office hours: {{hours}}.",
	},
	TypeContactReceived: {
		Subject: "New contact message from {{name}}",
		Body:    "{{name}} ({{email}} {{phone}}) wrote: {{message}}",
		Staff:   true,
	},
	TypeAlertPublished: {
		Subject: "[{{alertType}}] {{title}}",
		Body:    "{{message}} {{deadline}}",
	},
}

func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		switch val := v.(type) {
		case string:
			value = val
		case float64:
			value = strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", val), "0"), ".")
		case nil:
		default:
			value = fmt.Sprintf("%v", val)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Drop placeholders with no value.
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return strings.Join(strings.Fields(result), " ")
}

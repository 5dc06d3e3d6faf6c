package invites

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/pkg/errors"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/common"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/strongo/log"
	"github.com/strongo/validation"
)

const inviteEmailFrom = "invites@ranchotracker.app"

// SendInviteByEmail emails an invite code to a prospective member.
func SendInviteByEmail(c context.Context, invite models.InviteCode, issuerName, toEmail string) (messageID string, err error) {
	if toEmail == "" {
		return "", validation.NewErrRequestIsMissingRequiredField("toEmail")
	}
	subject := fmt.Sprintf("%s invited you to join their ranch on RanchoTracker", issuerName)
	bodyText := fmt.Sprintf(
		"%s invited you to join their ranch on RanchoTracker as %s.\n\n"+
			"Your invite code: %s\n\n"+
			"Open the app, choose \"Join a ranch\" and enter the code to get started.",
		issuerName, invite.Data.RoleType, invite.Data.Code,
	)
	bodyHtml := fmt.Sprintf(
		"<p>%s invited you to join their ranch on <b>RanchoTracker</b> as <b>%s</b>.</p>"+
			"<p>Your invite code: <b>%s</b></p>"+
			"<p>Open the app, choose <i>Join a ranch</i> and enter the code to get started.</p>",
		issuerName, invite.Data.RoleType, invite.Data.Code,
	)
	return SendEmail(c, inviteEmailFrom, toEmail, subject, bodyText, bodyHtml)
}

func SendEmail(c context.Context, from, to, subject, bodyText, bodyHtml string) (awsSesMessageID string, err error) {
	if bodyText == "" && bodyHtml == "" {
		panic(`bodyText == "" && bodyHtml == ""`)
	}
	awsSession, err := common.NewAwsSession()
	if err != nil {
		return "", errors.Wrap(err, "failed to create AWS session")
	}
	svc := ses.New(awsSession)
	params := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{
				aws.String(to),
			},
		},
		Message: &ses.Message{
			Body: &ses.Body{},
			Subject: &ses.Content{
				Data:    aws.String(subject),
				Charset: aws.String("utf-8"),
			},
		},
		Source: aws.String(from),
		ReplyToAddresses: []*string{
			aws.String(from),
		},
	}
	if bodyText != "" {
		params.Message.Body.Text = &ses.Content{
			Data:    aws.String(bodyText),
			Charset: aws.String("utf-8"),
		}
	}
	if bodyHtml != "" {
		params.Message.Body.Html = &ses.Content{
			Data:    aws.String(bodyHtml),
			Charset: aws.String("utf-8"),
		}
	}

	log.Debugf(c, "Sending email through AWS SES to %s", to)
	resp, err := svc.SendEmail(params)
	if err != nil {
		log.Errorf(c, "Failed to send email using AWS SES: %v", err)
		return "", errors.Wrap(err, "failed to send email")
	}
	log.Debugf(c, "AWS SES output: %v", resp)
	return *resp.MessageId, nil
}

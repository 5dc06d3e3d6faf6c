package invites

import (
	"context"
	"fmt"

	"github.com/rancho-co/ranchotracker-go/ranchotracker/common"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/strongo/gotwilio"
	"github.com/strongo/log"
	"github.com/strongo/validation"
)

const smsStatusCallbackURL = "https://api.ranchotracker.app/webhooks/twilio/sms/status"

// SendInviteBySms texts an invite code to a prospective member's phone.
func SendInviteBySms(c context.Context, invite models.InviteCode, issuerName, toPhoneNumber string) (smsResponse *gotwilio.SmsResponse, twilioException *gotwilio.Exception, err error) {
	if toPhoneNumber == "" {
		return nil, nil, validation.NewErrRequestIsMissingRequiredField("toPhoneNumber")
	}
	smsText := fmt.Sprintf("%s invited you to their ranch on RanchoTracker. Your invite code: %s", issuerName, invite.Data.Code)
	return SendSms(c, toPhoneNumber, smsText)
}

func SendSms(c context.Context, toPhoneNumber, smsText string) (smsResponse *gotwilio.SmsResponse, twilioException *gotwilio.Exception, err error) {
	twilio := gotwilio.NewTwilioClient(common.TwilioAccountSid, common.TwilioAccountToken)

	if smsResponse, twilioException, err = twilio.SendSMS(
		common.TwilioFromNumber,
		toPhoneNumber,
		smsText,
		smsStatusCallbackURL,
		common.TwilioApplicationSid,
	); err != nil {
		return
	}
	if twilioException != nil {
		log.Warningf(c, "Twilio exception %d sending SMS to %s: %s", twilioException.Code, toPhoneNumber, twilioException.Message)
	}
	return
}

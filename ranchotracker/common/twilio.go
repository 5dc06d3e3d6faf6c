package common

import "os"

var (
	TwilioAccountSid     = os.Getenv("TWILIO_ACCOUNT_SID")
	TwilioAccountToken   = os.Getenv("TWILIO_ACCOUNT_TOKEN")
	TwilioFromNumber     = os.Getenv("TWILIO_FROM_NUMBER")
	TwilioApplicationSid = os.Getenv("TWILIO_APPLICATION_SID")
)

package kafka

// Topic names are part of the external contract and must not be renamed.
// "user-login" is the historical name of the appointment-creation
// notification topic; treat it as opaque.
const (
	TopicUserLogin           = "user-login"
	TopicAvailabilityCreated = "availability-created"
	TopicAppointmentCreated  = "appointment-created"

	DefaultGroupID = "appointment-group"
)

package usecase

// Event is a one-shot navigation or side-effect signal emitted by a
// holder after the corresponding state update.
type Event string

const (
	EventNavigateToHome    Event = "NAVIGATE_HOME"
	EventNavigateToLogin   Event = "NAVIGATE_LOGIN"
	EventPasswordResetSent Event = "PASSWORD_RESET_SENT"
	EventGarmentSaved      Event = "GARMENT_SAVED"
	EventGarmentDeleted    Event = "GARMENT_DELETED"
	EventOutfitSaved       Event = "OUTFIT_SAVED"
)

const eventBuffer = 8

package domain

import "time"

// WizardStep is one step of the booking wizard
type WizardStep string

const (
	StepRescheduleDetails WizardStep = "reschedule_details"
	StepTimeSelection     WizardStep = "time_selection"
	StepDuration          WizardStep = "duration"
	StepLocation          WizardStep = "location"
	StepPayment           WizardStep = "payment"
	StepSubmitted         WizardStep = "submitted"
)

// SessionMode distinguishes the three wizard flows
type SessionMode string

const (
	// ModeBooking обычное создание новой записи
	ModeBooking SessionMode = "booking"
	// ModeEdit прямое редактирование записи в статусе pending
	ModeEdit SessionMode = "edit"
	// ModeReschedule запрос переноса активной записи, требует одобрения исполнителя
	ModeReschedule SessionMode = "reschedule"
)

// WizardSession is one logical wizard interaction owning a single draft
// Stored in Redis with a TTL; never shared across concurrent interactions.
type WizardSession struct {
	ID       string      `json:"id"`
	ClientID int64       `json:"clientId"`
	Mode     SessionMode `json:"mode"`

	CurrentStep WizardStep   `json:"currentStep"`
	StepHistory []WizardStep `json:"stepHistory"`

	Draft BookingDraft `json:"draft"`

	// Снимок исходной записи для режимов edit/reschedule; diff черновика
	// против снимка определяет, есть ли вообще изменения
	Original      *BookingDraft `json:"original,omitempty"`
	AppointmentID *int64        `json:"appointmentId,omitempty"`

	RescheduleReason RescheduleReason `json:"rescheduleReason,omitempty"`
	RescheduleNotes  string           `json:"rescheduleNotes,omitempty"`

	// Максимальная длительность для шага Duration, вычисляется при выборе
	// времени из рабочих часов исполнителя
	MaxDurationHours int `json:"maxDurationHours"`

	// Ключ идемпотентности, фиксируется при создании сессии
	IdempotencyKey string `json:"idempotencyKey"`

	SubmittedAppointmentID *int64 `json:"submittedAppointmentId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// GoTo advances the session to the given step, remembering the current one
// for backward navigation
func (s *WizardSession) GoTo(step WizardStep) {
	s.StepHistory = append(s.StepHistory, s.CurrentStep)
	s.CurrentStep = step
}

// GoBack moves the session to the previous step
// Data entered on steps beyond the target is preserved in the draft.
// At the first step GoBack is a no-op.
func (s *WizardSession) GoBack() {
	if n := len(s.StepHistory); n > 0 {
		s.CurrentStep = s.StepHistory[n-1]
		s.StepHistory = s.StepHistory[:n-1]
	}
}

// IsSubmitted returns true once the session reached its terminal success state
func (s *WizardSession) IsSubmitted() bool {
	return s.CurrentStep == StepSubmitted
}

// MarkSubmitted moves the session to the terminal Submitted state, recording
// the appointment the submission produced or changed
func (s *WizardSession) MarkSubmitted(appointmentID int64) {
	s.StepHistory = append(s.StepHistory, s.CurrentStep)
	s.CurrentStep = StepSubmitted
	s.SubmittedAppointmentID = &appointmentID
}

// IsChangeMode returns true for the edit and reschedule flows
func (s *WizardSession) IsChangeMode() bool {
	return s.Mode == ModeEdit || s.Mode == ModeReschedule
}

// HasChanges returns true if the draft differs from the original snapshot
// Always true for booking mode, which has no snapshot.
func (s *WizardSession) HasChanges() bool {
	if s.Original == nil {
		return true
	}
	return len(s.Draft.DiffAgainst(*s.Original)) > 0
}

// LastStep returns the step after which the session is ready for submission
func (s *WizardSession) LastStep() WizardStep {
	if s.IsChangeMode() {
		// Режимы изменения пропускают шаг оплаты
		return StepLocation
	}
	return StepPayment
}

package views

import "fincast/internal/models"

// Warning is the indicator under one expense field. A zero Warning renders
// an empty slot.
type Warning struct {
	SlotID  string
	Status  models.ExpenseStatus
	Icon    string
	Message string
}

// Empty reports whether the slot has no indicator
func (w Warning) Empty() bool {
	return w.Status == ""
}

// NewWarning builds the indicator for a classification. ok false yields an
// empty slot.
func NewWarning(slotID string, c models.Classification, ok bool) Warning {
	if !ok {
		return Warning{SlotID: slotID}
	}
	return Warning{
		SlotID:  slotID,
		Status:  c.Status,
		Icon:    c.Status.Icon(),
		Message: c.Message,
	}
}

package usecases

import (
	"errors"

	"github.com/google/uuid"

	domainerrors "stremini.backend/internal/domain/errors"
)

// ModalState is the client-visible state of a create/edit form.
type ModalState[F any] struct {
	Open      bool       `json:"open"`
	EditingID *uuid.UUID `json:"editingId"`
	Form      F          `json:"form"`
	Saving    bool       `json:"saving"`
	Error     string     `json:"error,omitempty"`
}

// editModal moves Closed -> Open(new|editing) -> Closed. A failed save keeps it open with the error set.
type editModal[F any] struct {
	open      bool
	editingID uuid.UUID
	form      F
	saving    bool
	err       string
}

func (m *editModal[F]) openNew(defaults F) error {
	if m.saving {
		return domainerrors.ErrSaveInFlight
	}
	*m = editModal[F]{open: true, form: defaults}
	return nil
}

func (m *editModal[F]) openEdit(id uuid.UUID, form F) error {
	if m.saving {
		return domainerrors.ErrSaveInFlight
	}
	*m = editModal[F]{open: true, editingID: id, form: form}
	return nil
}

func (m *editModal[F]) cancel() error {
	if m.saving {
		return domainerrors.ErrSaveInFlight
	}
	*m = editModal[F]{}
	return nil
}

// begin marks the modal as saving and returns the record being edited, or uuid.Nil for a new one.
func (m *editModal[F]) begin(form F) (uuid.UUID, error) {
	if !m.open {
		return uuid.Nil, domainerrors.ErrModalClosed
	}
	if m.saving {
		return uuid.Nil, domainerrors.ErrSaveInFlight
	}
	m.form = form
	m.saving = true
	m.err = ""
	return m.editingID, nil
}

func (m *editModal[F]) fail(err error) {
	m.saving = false
	m.err = errorMessage(err)
}

func (m *editModal[F]) close() {
	*m = editModal[F]{}
}

func (m *editModal[F]) state() ModalState[F] {
	s := ModalState[F]{
		Open:   m.open,
		Form:   m.form,
		Saving: m.saving,
		Error:  m.err,
	}
	if m.open && m.editingID != uuid.Nil {
		id := m.editingID
		s.EditingID = &id
	}
	return s
}

// errorMessage prefers the user-facing message of an AppError.
func errorMessage(err error) string {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

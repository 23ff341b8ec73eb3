package browser

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	TypeFolderSelected = "folderSelected"
	TypeDialogClosed   = "dialogClosed"
)

var ErrInvalidMessage = errors.New("invalid browser message")

// Message is a validated message from a browse dialog. The only
// implementations are [FolderSelected] and [DialogClosed].
type Message interface {
	Dialog() string
	isMessage()
}

// FolderSelected reports that the user picked a folder.
type FolderSelected struct {
	DialogID string
	Path     string
}

func (m FolderSelected) Dialog() string { return m.DialogID }
func (FolderSelected) isMessage()       {}

// Kind returns the folder kind the dialog was opened for.
func (m FolderSelected) Kind() Kind {
	k, _ := KindOf(m.DialogID)

	return k
}

// DialogClosed reports that the dialog was closed without a selection.
type DialogClosed struct {
	DialogID string
}

func (m DialogClosed) Dialog() string { return m.DialogID }
func (DialogClosed) isMessage()       {}

type wireMessage struct {
	Type     string `json:"type"`
	DialogID string `json:"dialogId"`
	Path     string `json:"path,omitempty"`
}

// Decode validates raw and returns the message it holds. Unknown type tags,
// unknown dialog IDs and folder selections without a path are rejected with
// [ErrInvalidMessage].
func Decode(raw []byte) (Message, error) {
	var w wireMessage

	err := json.Unmarshal(raw, &w)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	return w.message()
}

// Encode returns the wire form of msg.
func Encode(msg Message) ([]byte, error) {
	var w wireMessage

	switch m := msg.(type) {
	case FolderSelected:
		w = wireMessage{Type: TypeFolderSelected, DialogID: m.DialogID, Path: m.Path}
	case DialogClosed:
		w = wireMessage{Type: TypeDialogClosed, DialogID: m.DialogID}
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidMessage, msg)
	}

	_, err := w.message()
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	return b, nil
}

// Validate checks msg the same way [Decode] checks raw payloads.
func Validate(msg Message) error {
	if msg == nil {
		return fmt.Errorf("%w: nil message", ErrInvalidMessage)
	}

	_, err := Encode(msg)

	return err
}

func (w wireMessage) message() (Message, error) {
	if _, ok := KindOf(w.DialogID); !ok {
		return nil, fmt.Errorf("%w: unknown dialog %q", ErrInvalidMessage, w.DialogID)
	}

	switch w.Type {
	case TypeFolderSelected:
		if w.Path == "" {
			return nil, fmt.Errorf("%w: missing path", ErrInvalidMessage)
		}

		return FolderSelected{DialogID: w.DialogID, Path: w.Path}, nil

	case TypeDialogClosed:
		return DialogClosed{DialogID: w.DialogID}, nil
	}

	return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidMessage, w.Type)
}

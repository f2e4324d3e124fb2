package storage

import (
	"context"
	"sort"
	"strings"

	"todoshell/pkg/utils"
)

const modalKeyPrefix = "modalOpen."

// Modal names registered by the dialogs
const (
	ModalAddTodo         = "addTodo"
	ModalFilter          = "filter"
	ModalTodoListChooser = "todoListChooser"
	ModalDeleteConfirm   = "deleteConfirm"
	ModalHelp            = "help"
)

// ModalStorage records which dialogs are open. It only exists to keep a global
// shortcut from opening a dialog on top of another one.
type ModalStorage struct {
	storage Storage
	names   map[string]struct{}
}

func NewModalStorage(s Storage) *ModalStorage {
	return &ModalStorage{storage: s, names: make(map[string]struct{})}
}

// SetModalIsOpen records whether the named modal is open
func (m *ModalStorage) SetModalIsOpen(open bool, name string) {
	m.names[name] = struct{}{}
	ctx := context.Background()
	var err error
	if open {
		err = m.storage.Set(ctx, modalKeyPrefix+name, "true")
	} else {
		err = m.storage.Remove(ctx, modalKeyPrefix+name)
	}
	if err != nil {
		utils.Logger().Error("record modal state", "modal", name, "open", open, "err", err)
	}
}

// IsModalOpen reports whether any modal is open
func (m *ModalStorage) IsModalOpen() bool {
	return len(m.OpenModals()) > 0
}

// IsOtherModalOpen reports whether a modal other than name is open
func (m *ModalStorage) IsOtherModalOpen(name string) bool {
	for _, open := range m.OpenModals() {
		if open != name {
			return true
		}
	}
	return false
}

// OpenModals lists the names of the open modals
func (m *ModalStorage) OpenModals() []string {
	ctx := context.Background()
	var open []string
	for name := range m.names {
		v, err := m.storage.Get(ctx, modalKeyPrefix+name)
		if err == nil && strings.TrimSpace(v) == "true" {
			open = append(open, name)
		}
	}
	sort.Strings(open)
	return open
}

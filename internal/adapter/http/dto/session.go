package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/plastinin/recipefinder/internal/domain"
)

// Типы действий клиента
const (
	ActionSignIn         = "SIGNIN"
	ActionSubmitUserInfo = "SUBMIT_USER_INFO"
)

var ErrUnknownAction = errors.New("unknown action type")

// ActionRequest действие над состоянием клиентской сессии
type ActionRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ToDomain разбирает payload в зависимости от типа действия.
// SIGNIN с пустым или null payload означает выход.
func (r ActionRequest) ToDomain() (domain.Action, error) {
	switch strings.ToUpper(r.Type) {
	case ActionSignIn:
		if isNull(r.Payload) {
			return domain.SignIn{}, nil
		}
		var user domain.SessionUser
		if err := json.Unmarshal(r.Payload, &user); err != nil {
			return nil, fmt.Errorf("invalid SIGNIN payload: %w", err)
		}
		if user.UID == "" {
			return nil, fmt.Errorf("invalid SIGNIN payload: uid is required")
		}
		return domain.SignIn{User: &user}, nil

	case ActionSubmitUserInfo:
		info := map[string]any{}
		if !isNull(r.Payload) {
			if err := json.Unmarshal(r.Payload, &info); err != nil {
				return nil, fmt.Errorf("invalid SUBMIT_USER_INFO payload: %w", err)
			}
		}
		return domain.SubmitUserInfo{Info: info}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, r.Type)
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

package domain

// SessionUser пользователь, вошедший в клиентское приложение
type SessionUser struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// ClientState глобальное состояние клиента
type ClientState struct {
	IsSignedIn  bool           `json:"is_signed_in"`
	CurrentUser *SessionUser   `json:"current_user"`
	UserInfo    map[string]any `json:"user_info"` // Ответы анкеты для расчёта норм
}

// NewClientState начальное состояние
func NewClientState() ClientState {
	return ClientState{UserInfo: map[string]any{}}
}

// Action действие над состоянием клиента.
// Набор закрыт: реализации есть только в этом пакете.
type Action interface {
	isAction()
}

// SignIn вход или выход (User == nil)
type SignIn struct {
	User *SessionUser
}

// SubmitUserInfo сохранение ответов анкеты
type SubmitUserInfo struct {
	Info map[string]any
}

func (SignIn) isAction()         {}
func (SubmitUserInfo) isAction() {}

// Reduce применяет действие и возвращает новое состояние, исходное не меняется
func Reduce(state ClientState, action Action) ClientState {
	next := state

	switch a := action.(type) {
	case SignIn:
		next.IsSignedIn = a.User != nil
		next.CurrentUser = a.User
	case SubmitUserInfo:
		next.UserInfo = a.Info
	}

	return next
}

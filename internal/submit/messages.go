package submit

// Messages — тексты, которые видит пользователь.
type Messages struct {
	InProgress   string // подпись кнопки во время отправки
	Success      string
	ErrorPrefix  string // перед сообщением сервера
	Fallback     string // если сервер не прислал "error"
	Connectivity string // транспорт не отработал
}

// DefaultMessages — тексты исходной страницы.
var DefaultMessages = Messages{
	InProgress:   "Sending...",
	Success:      "Success! Your message has been sent successfully.",
	ErrorPrefix:  "Error: ",
	Fallback:     "Something went wrong.",
	Connectivity: "Failed to connect to the server. Please check your connection and the browser console (F12) for more details.",
}

func (m Messages) withDefaults() Messages {
	if m.InProgress == "" {
		m.InProgress = DefaultMessages.InProgress
	}
	if m.Success == "" {
		m.Success = DefaultMessages.Success
	}
	if m.ErrorPrefix == "" {
		m.ErrorPrefix = DefaultMessages.ErrorPrefix
	}
	if m.Fallback == "" {
		m.Fallback = DefaultMessages.Fallback
	}
	if m.Connectivity == "" {
		m.Connectivity = DefaultMessages.Connectivity
	}
	return m
}

func (m Messages) rejected(serverMsg string) string {
	if serverMsg == "" {
		serverMsg = m.Fallback
	}
	return m.ErrorPrefix + serverMsg
}

package response

type Success struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type Error struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func OK(data interface{}) Success {
	return Success{Success: true, Data: data}
}

func Fail(message string) Error {
	return Error{Success: false, Error: message}
}

type Health struct {
	Status   string   `json:"status"`
	Service  string   `json:"service"`
	Version  string   `json:"version"`
	Features []string `json:"features"`
	NER      string   `json:"ner"`
}

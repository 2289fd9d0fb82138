package entity

type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

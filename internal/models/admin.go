package model

type AdminCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

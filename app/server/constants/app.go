package constants

const (
	AppName    = "User directory API"
	AppVersion = "1.0.0"
)

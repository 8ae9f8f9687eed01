package lambda

// Overridable at link time:
//
//	go build -ldflags "-X 'github.com/adrianratnapala/tpl01-lambda.Version=...'"
var (
	Version   = "0.2.1"
	BuildDate = "dev"
)

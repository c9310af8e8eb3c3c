package domain

// Language identifies a supported execution backend
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageJava       Language = "java"
	LanguageGo         Language = "go"
	LanguageRust       Language = "rust"
	LanguageCpp        Language = "cpp"
	LanguageC          Language = "c"
	LanguageScala      Language = "scala"
)

// SupportedLanguages is the fixed set of languages, in display order
var SupportedLanguages = []Language{
	LanguagePython,
	LanguageJavaScript,
	LanguageJava,
	LanguageGo,
	LanguageRust,
	LanguageCpp,
	LanguageC,
	LanguageScala,
}

// ExecutionRequest is a single request to run candidate code
type ExecutionRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// ExecutionResult is the canonical result returned to the browser
type ExecutionResult struct {
	Success       bool   `json:"success"`
	Output        string `json:"output,omitempty"`
	Stdout        string `json:"stdout,omitempty"`
	Stderr        string `json:"stderr,omitempty"`
	Error         string `json:"error,omitempty"`
	ExecutionTime *int64 `json:"executionTime,omitempty"`
}

// BackendPayload is the body sent to an execution backend function
type BackendPayload struct {
	Code                string `json:"code"`
	IsFinalSubmission   string `json:"isFinalSubmission"`
	RequestAIValidation string `json:"requestAIValidation"`
}

// BackendReply is the raw reply of a backend invocation
type BackendReply struct {
	StatusCode    int32
	FunctionError string
	Payload       []byte
}

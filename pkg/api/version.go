package api

const ApiVersion_1_0 = "1.0"

type GetVersionRsp struct {
	ServerVersion string `json:"server_version"`
	ApiVersion    string `json:"api_version"`
}

// MessageRsp is the body of the service banner and of calls that only
// confirm an action.
type MessageRsp struct {
	Message string `json:"message"`
}

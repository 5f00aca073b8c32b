package calcapi

// EvalRequest is the wire payload for POST /v1/eval.
type EvalRequest struct {
	Expression string `json:"expression"`
}

// EvalResponse echoes the expression with its computed value. Result is a
// decimal string so arbitrary precision survives the wire.
type EvalResponse struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

// ConstantInfo describes one supported math constant.
type ConstantInfo struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ConstantsResponse is the wire payload for GET /v1/constants.
type ConstantsResponse struct {
	Constants []ConstantInfo `json:"constants"`
}

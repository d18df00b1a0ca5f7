package metrics

const (
	ServerInferDurationH = "The time spent per inference call in seconds"
	ServerInferDurationN = "fuzzyservice_server_infer_duration_seconds"
	ServerReqsFailedH    = "The total number of inference requests that failed"
	ServerReqsFailedN    = "fuzzyservice_server_reqs_failed"
	ServerReqsReceivedH  = "The total number of inference requests received"
	ServerReqsReceivedN  = "fuzzyservice_server_reqs_received"
	ServerReqsServedH    = "The total number of inference requests served"
	ServerReqsServedN    = "fuzzyservice_server_reqs_served"
)

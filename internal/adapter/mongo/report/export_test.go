package report

// ListOptions exposes the find options List sends to the server.
var ListOptions = listOptions

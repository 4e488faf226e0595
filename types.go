package main

import "github.com/vincentzyu233/youtube-linkcard/restclient"

// HTTP 线格式类型。服务端与委托客户端共用同一套定义，
// 保证协议两端的字段名（包括历史拼写）永远一致。
type (
	ParseRequest   = restclient.ParseRequest
	ParsePayload   = restclient.ParsePayload
	RenderResponse = restclient.RenderResponse
	ErrorResponse  = restclient.ErrorResponse
)

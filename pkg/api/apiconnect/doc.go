// Package apiconnect wires the kasir.v1 services to Connect handlers and
// clients. Every handler and client uses api.JSONCodec.
package apiconnect

// Package vesc encodes VESC motor controller commands.
package vesc

// A command is built once as an immutable Message and then serialized by
// one of two independent encoders:
//
// UART (point-to-point), 10 bytes:
//   0x02 0x05 | 0x05+command | payload (int32 BE) | crc16 (BE) | 0x03
//
// CAN (multi-drop), extended identifier plus trimmed payload:
//   id   = command<<8 | target
//   data = payload (int32 BE) without leading zero bytes, at least 1 byte
//
// Everything in this package is stateless and safe for concurrent use.
// Writes to a shared transport must be serialized by the transport.

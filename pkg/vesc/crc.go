package vesc

import "github.com/sigurn/crc16"

// CRCParams are the parameters of the checksum used by UART frames.
// The initial register 0x0205 stands in for the frame preamble.
var CRCParams = crc16.Params{
	Poly:   0x1021,
	Init:   0x0205,
	RefIn:  false,
	RefOut: false,
	XorOut: 0x0000,
	Check:  0xbf1a,
	Name:   "CRC-16/VESC",
}

var crcTable = crc16.MakeTable(CRCParams)

// CRC16 computes the checksum of data.
func CRC16(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}

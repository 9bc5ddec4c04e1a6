package vesc

// ParseResult indicates the result after one parsing step.
type ParseResult struct {
	// Message is set when a valid frame completes.
	Message *Message
	// Err is set when a complete frame is discarded.
	Err error
}

// Parser reassembles UART frames from a byte stream.
// Bytes outside of a frame are skipped until the next start byte.
type Parser struct {
	frame [UARTFrameLen]byte
	size  int
}

// Reset drops any partially received frame.
func (p *Parser) Reset() {
	p.size = 0
}

// Receiving indicates a frame is partially received.
func (p *Parser) Receiving() bool {
	return p.size > 0
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	switch p.size {
	case 0:
		if b != uartStart {
			return
		}
	case 1:
		if b != uartLength {
			// a start byte may begin the real frame.
			if b != uartStart {
				p.size = 0
			}
			return
		}
	}
	p.frame[p.size] = b
	if p.size++; p.size < UARTFrameLen {
		return
	}
	msg, err := DecodeUART(p.frame[:])
	if err != nil {
		pr.Err = err
		p.resync()
		return
	}
	p.size = 0
	pr.Message = &msg
	return
}

// resync keeps the bytes from the next possible frame start in a
// discarded frame, as a truncated frame may be followed by a valid one.
func (p *Parser) resync() {
	for i := 1; i < UARTFrameLen; i++ {
		if p.frame[i] != uartStart {
			continue
		}
		if i+1 < UARTFrameLen && p.frame[i+1] != uartLength {
			continue
		}
		p.size = copy(p.frame[:], p.frame[i:])
		return
	}
	p.size = 0
}

// Write feeds a chunk of bytes and returns all results in order.
func (p *Parser) Write(data []byte) (results []ParseResult) {
	for _, b := range data {
		if pr := p.Parse(b); pr.Message != nil || pr.Err != nil {
			results = append(results, pr)
		}
	}
	return
}

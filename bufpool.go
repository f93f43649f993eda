package serial

import (
	"bytes"
	"sync"
)

// bytesBufPool reuses the buffers Marshal encodes into.
var bytesBufPool = sync.Pool{
	New: func() any {
		// A 4KB default is chosen to avoid re-allocations for common payload sizes.
		return bytes.NewBuffer(make([]byte, 0, BUFFER_SIZE))
	},
}

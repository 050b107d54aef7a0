package source

import (
	"fmt"
	"strconv"
)

var sequenceColumns = []string{"#", "HEX", "SQUARE", "LABEL"}

// NewSequence creates n deterministic synthetic rows, generated on demand.
func NewSequence(n int) *Memory {
	return newIndexed(fmt.Sprintf("seq:%d", n), sequenceColumns, n, sequenceRow)
}

func sequenceRow(i int) []string {
	return []string{
		strconv.Itoa(i + 1),
		fmt.Sprintf("%#x", i),
		strconv.FormatInt(int64(i)*int64(i), 10),
		fmt.Sprintf("row %d of the sequence", i+1),
	}
}

package bundle

// Fuzz is a go-fuzz style harness exercising the full bundle decode path.
func Fuzz(data []byte) int {
	b, err := Parse(data, nil)
	if err != nil {
		return 0
	}
	_ = b.Container()
	return 1
}

package pb

import "fmt"

func errUnimplemented(method string) error {
	return fmt.Errorf("method %s not implemented", method)
}

package domain

// Identity is the verified caller of a core operation. It is built once by
// the identity gate and every cart, order and catalog query is scoped by it.
type Identity struct {
	CustomerID int64
}

func (i Identity) Valid() bool { return i.CustomerID > 0 }

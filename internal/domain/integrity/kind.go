// Package integrity holds the cross-record rules that keep the fleet data model
// consistent under concurrent multi-tenant writes: per-kind uniqueness keys and
// the dependents that block a deletion.
package integrity

// Kind identifies a record kind in the entity store
type Kind string

const (
	KindCustomer       Kind = "customer"
	KindPaymentDevice  Kind = "payment_device"
	KindVendingDevice  Kind = "vending_device"
	KindVendingProduct Kind = "vending_product"
	KindDevice         Kind = "device"
	KindTransaction    Kind = "transaction"
)

// String returns the kind name
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind
func (k Kind) IsValid() bool {
	switch k {
	case KindCustomer, KindPaymentDevice, KindVendingDevice, KindVendingProduct, KindDevice, KindTransaction:
		return true
	}
	return false
}

// Field names a uniqueness-constrained field
type Field string

const (
	FieldTaxNumber           Field = "tax_number"
	FieldPLU                 Field = "plu"
	FieldPaymentDeviceSerial Field = "payment_device_serial"
	FieldVendingDeviceSerial Field = "vending_device_serial"
)

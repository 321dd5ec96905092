package partner

import (
	"github.com/futurevend/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	shared.TenantRepository[Customer]
}

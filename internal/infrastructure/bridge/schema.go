package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/chaoxe/miniapp/internal/domain/entity"
)

// WireBatch is the array payload posted by the page script.
type WireBatch []entity.WireMessage

// WireSchema returns the JSON schema of a bridge payload.
func WireSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&WireBatch{})
	schema.ID = "https://chyxe.cn/schemas/bridge-payload.schema.json"
	schema.Title = "Embedded view bridge payload"
	schema.Description = "Messages posted by the injected page script; hosts read only the first element"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal bridge schema: %w", err)
	}
	return data, nil
}

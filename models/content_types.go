package models

// ContentType tags the semantic type of an item's encrypted payload.
// The server never decrypts content; the tag exists for filtering,
// validation and for identifying key material during first-sync
// bootstrapping.
type ContentType string

const (
	Note            ContentType = "Note"
	Tag             ContentType = "Tag"
	ItemsKey        ContentType = "SN|ItemsKey"
	Component       ContentType = "SN|Component"
	Theme           ContentType = "SN|Theme"
	Privileges      ContentType = "SN|Privileges"
	SmartTag        ContentType = "SN|SmartTag"
	UserPreferences ContentType = "SN|UserPreferences"
	Extension       ContentType = "Extension"
	ServerExtension ContentType = "SF|Extension"
	MFA             ContentType = "SF|MFA"
)

// contentTypes is the server's recognized enumeration. An item hash whose
// content type is not listed here is rejected by the save rule chain.
var contentTypes = map[ContentType]struct{}{
	Note:            {},
	Tag:             {},
	ItemsKey:        {},
	Component:       {},
	Theme:           {},
	Privileges:      {},
	SmartTag:        {},
	UserPreferences: {},
	Extension:       {},
	ServerExtension: {},
	MFA:             {},
}

// keyContentTypes lists content types that carry cryptographic key material
// required to decrypt other items.
var keyContentTypes = map[ContentType]struct{}{
	ItemsKey: {},
}

// IsValidContentType reports whether ct is a member of the recognized
// content-type enumeration.
func IsValidContentType(ct ContentType) bool {
	_, ok := contentTypes[ct]
	return ok
}

// IsKeyContentType reports whether items of this type must be delivered
// before the rest of the item set on a first sync.
func IsKeyContentType(ct ContentType) bool {
	_, ok := keyContentTypes[ct]
	return ok
}

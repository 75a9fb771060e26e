package api

import "fmt"

// Endpoint paths, relative to the client's base URL. Parameterized paths are
// functions of the resource id so call sites cannot mis-build them.
const (
	EndpointRegister       = "/auth/register"
	EndpointLogin          = "/auth/login"
	EndpointLogout         = "/auth/logout"
	EndpointMe             = "/auth/me"
	EndpointUpdateProfile  = "/auth/profile"
	EndpointChangePassword = "/auth/change-password"

	EndpointItems   = "/items"
	EndpointMyItems = "/items/user/my-items"

	EndpointUploadImages = "/upload/images"
)

func EndpointItemByID(id string) string { return fmt.Sprintf("/items/%s", id) }

func EndpointItemSold(id string) string { return fmt.Sprintf("/items/%s/sold", id) }

func EndpointItemsBySeller(sellerID string) string { return fmt.Sprintf("/items/seller/%s", sellerID) }

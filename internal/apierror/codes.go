package apierror

// Problem type URIs, used as the "type" member of a Problem Details body
const (
	TypeValidation        = "urn:kreativium:error:validation"
	TypeBadRequest        = "urn:kreativium:error:bad_request"
	TypeInvalidID         = "urn:kreativium:error:invalid_id"
	TypeNotFound          = "urn:kreativium:error:not_found"
	TypeOwnershipMismatch = "urn:kreativium:error:ownership_mismatch"
	TypeConflict          = "urn:kreativium:error:conflict"
	TypeUnauthorized      = "urn:kreativium:error:unauthorized"
	TypeForbidden         = "urn:kreativium:error:forbidden"
	TypeRateLimit         = "urn:kreativium:error:rate_limit"
	TypeInternal          = "urn:kreativium:error:internal"
)

const (
	TitleValidation        = "Validation Error"
	TitleBadRequest        = "Bad Request"
	TitleInvalidID         = "Invalid Identifier"
	TitleNotFound          = "Resource Not Found"
	TitleOwnershipMismatch = "Records Belong To Different Users"
	TitleConflict          = "Resource Conflict"
	TitleUnauthorized      = "Authentication Required"
	TitleForbidden         = "Permission Denied"
	TitleRateLimit         = "Rate Limit Exceeded"
	TitleInternal          = "Internal Server Error"
)

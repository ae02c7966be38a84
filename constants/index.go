package constants

const (
	ROLE_ADMIN   = "admin"
	ROLE_MANAGER = "manager"
	ROLE_STAFF   = "staff"
)

const (
	ERROR_INTERNAL_ERROR = "Internal server error"
	ERROR_INPUT          = "Invalid input"
	ERROR_CREATE         = "Failed to create record"
	ERROR_UPDATE         = "Failed to update record"
	ERROR_DELETE         = "Failed to delete record"

	MISSING_LOGIN_INPUT      = "Username and password are required"
	INVALID_USERNAME         = "Username does not exist"
	INVALID_PASSWORD         = "Invalid password"
	CAN_NOT_HASH_PASSWORD    = "Cannot hash password"
	NOT_ADMIN                = "Admin privileges required"
	DATA_INPUT_IS_NOT_NUMBER = "Parameter must be a number"
)

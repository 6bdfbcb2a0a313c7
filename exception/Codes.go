package exception

const (
	BadRequestBody    = "10"
	BadRequestBodyMsg = "Failed to decode body"

	EmptyParameter    = "11"
	EmptyParameterMsg = "Parameter $param should not be empty"

	IncorrectParamType    = "12"
	IncorrectParamTypeMsg = "Parameter $param should be of type $type"

	ValidationFailed    = "20"
	ValidationFailedMsg = "Validation failed"

	TokenMissing    = "30"
	TokenMissingMsg = "Unauthorized: Missing Bearer token"

	TokenInvalid    = "31"
	TokenInvalidMsg = "Forbidden: Invalid token"

	DirectoryDocumentNotFound    = "40"
	DirectoryDocumentNotFoundMsg = "No document found in $collection"

	EmailAlreadyTaken    = "41"
	EmailAlreadyTakenMsg = "Email $email already exists"

	DirectoryUpdateFailed    = "42"
	DirectoryUpdateFailedMsg = "Failed to store login credential for $email"

	AccountCreationFailed    = "50"
	AccountCreationFailedMsg = "Failed to create account: $error"

	IdentityServiceFailure    = "51"
	IdentityServiceFailureMsg = "Failed to list accounts from identity service"
)

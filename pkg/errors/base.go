package errors

import "net/http"

// OK represents a successful operation.
var OK = Register(&Errno{
	Code:      0,
	HTTP:      http.StatusOK,
	MessageEN: "Success",
	MessageES: "Éxito",
})

// ============================================================================
// Common errors
// ============================================================================

var (
	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = Register(&Errno{
		Code:      MakeCode(ModuleCommon, CategoryRequest, 0),
		HTTP:      http.StatusBadRequest,
		MessageEN: "Bad request",
		MessageES: "Solicitud inválida",
	})

	// ErrValidation indicates input rejected before it reached the server.
	ErrValidation = Register(&Errno{
		Code:      MakeCode(ModuleCommon, CategoryRequest, 1),
		HTTP:      http.StatusUnprocessableEntity,
		MessageEN: "Validation failed",
		MessageES: "Verifica los campos del formulario",
	})

	// ErrUnauthorized indicates the request is not authenticated.
	ErrUnauthorized = Register(&Errno{
		Code:      MakeCode(ModuleCommon, CategoryAuth, 0),
		HTTP:      http.StatusUnauthorized,
		MessageEN: "Unauthenticated.",
		MessageES: "No autenticado",
	})

	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = Register(&Errno{
		Code:      MakeCode(ModuleCommon, CategoryAuth, 1),
		HTTP:      http.StatusUnauthorized,
		MessageEN: "Invalid credentials",
		MessageES: "Credenciales inválidas",
	})

	// ErrForbidden indicates the request is forbidden.
	ErrForbidden = Register(&Errno{
		Code:      MakeCode(ModuleCommon, CategoryPermission, 0),
		HTTP:      http.StatusForbidden,
		MessageEN: "Forbidden",
		MessageES: "Acceso denegado",
	})

	// ErrNotFound indicates the resource is not found.
	ErrNotFound = Register(&Errno{
		Code:      MakeCode(ModuleCommon, CategoryResource, 0),
		HTTP:      http.StatusNotFound,
		MessageEN: "Resource not found",
		MessageES: "Recurso no encontrado",
	})

	// ErrAlreadyExists indicates the resource already exists.
	ErrAlreadyExists = Register(&Errno{
		Code:      MakeCode(ModuleCommon, CategoryConflict, 0),
		HTTP:      http.StatusConflict,
		MessageEN: "Resource already exists",
		MessageES: "El recurso ya existe",
	})

	// ErrInternal indicates an unexpected internal error.
	ErrInternal = Register(&Errno{
		Code:      MakeCode(ModuleCommon, CategoryInternal, 0),
		HTTP:      http.StatusInternalServerError,
		MessageEN: "Internal error",
		MessageES: "Error interno",
	})

	// ErrConfig indicates invalid configuration.
	ErrConfig = Register(&Errno{
		Code:      MakeCode(ModuleCommon, CategoryConfig, 0),
		HTTP:      http.StatusInternalServerError,
		MessageEN: "Invalid configuration",
		MessageES: "Configuración inválida",
	})
)

// ============================================================================
// Client errors (session, forms, API client)
// ============================================================================

var (
	// ErrNotAuthenticated is returned when a protected operation runs without a stored token.
	ErrNotAuthenticated = Register(&Errno{
		Code:      MakeCode(ModuleClient, CategoryAuth, 0),
		HTTP:      http.StatusUnauthorized,
		MessageEN: "Not logged in",
		MessageES: "Sesión no iniciada",
	})

	// ErrReadOnly is returned when a form opened in view mode is mutated or submitted.
	ErrReadOnly = Register(&Errno{
		Code:      MakeCode(ModuleClient, CategoryPermission, 0),
		HTTP:      http.StatusForbidden,
		MessageEN: "Form is read-only",
		MessageES: "Formulario de solo lectura",
	})

	// ErrFormClosed is returned when a closed form is used.
	ErrFormClosed = Register(&Errno{
		Code:      MakeCode(ModuleClient, CategoryRequest, 0),
		HTTP:      http.StatusBadRequest,
		MessageEN: "Form is closed",
		MessageES: "Formulario cerrado",
	})

	// ErrUnknownMedicine is returned when a medicine id is not in the loaded catalogue.
	ErrUnknownMedicine = Register(&Errno{
		Code:      MakeCode(ModuleClient, CategoryResource, 0),
		HTTP:      http.StatusNotFound,
		MessageEN: "Unknown medicine",
		MessageES: "Medicamento desconocido",
	})

	// ErrSessionStore wraps failures of the persisted session backend.
	ErrSessionStore = Register(&Errno{
		Code:      MakeCode(ModuleClient, CategoryStorage, 0),
		HTTP:      http.StatusInternalServerError,
		MessageEN: "Session store failure",
		MessageES: "Error en el almacenamiento de sesión",
	})

	// ErrTransport wraps network failures (no HTTP response received).
	ErrTransport = Register(&Errno{
		Code:      MakeCode(ModuleClient, CategoryNetwork, 0),
		HTTP:      http.StatusBadGateway,
		MessageEN: "Could not reach the server",
		MessageES: "No se pudo contactar al servidor",
	})

	// ErrDecode wraps undecodable response bodies.
	ErrDecode = Register(&Errno{
		Code:      MakeCode(ModuleClient, CategoryNetwork, 1),
		HTTP:      http.StatusBadGateway,
		MessageEN: "Unexpected response from server",
		MessageES: "Respuesta inesperada del servidor",
	})
)

// ============================================================================
// Reference server errors
// ============================================================================

var (
	// ErrDatabase indicates a storage failure on the server.
	ErrDatabase = Register(&Errno{
		Code:      MakeCode(ModuleServer, CategoryStorage, 0),
		HTTP:      http.StatusInternalServerError,
		MessageEN: "Database error",
		MessageES: "Error de base de datos",
	})

	// ErrEmailTaken indicates a duplicate registration email.
	ErrEmailTaken = Register(&Errno{
		Code:      MakeCode(ModuleServer, CategoryConflict, 0),
		HTTP:      http.StatusUnprocessableEntity,
		MessageEN: "The email has already been taken.",
		MessageES: "El correo ya está registrado.",
	})
)

// Package form holds the stateful forms behind the medreq screens: the
// request form, the user form and the login form. Forms validate locally and
// only reach the API once their input is complete.
package form

import (
	errno "github.com/kart-io/medreq/pkg/errors"
)

// Notification texts, English then Spanish.
var (
	MsgSelectMedicine    = [2]string{"Select a medicine", "Seleccione un medicamento"}
	MsgCompleteRequired  = [2]string{"Complete all required fields", "Complete todos los campos obligatorios"}
	MsgRequestSaved      = [2]string{"Request registered", "Solicitud registrada"}
	MsgRequestSaveFailed = [2]string{"Could not save the request", "Error al guardar"}
	MsgMedicinesFailed   = [2]string{"Could not load medicines", "Error al cargar medicamentos"}

	MsgCheckFields     = [2]string{"Check the form fields", "Verifica los campos del formulario"}
	MsgUserCreated     = [2]string{"User created", "Usuario creado correctamente"}
	MsgUserUpdated     = [2]string{"User updated", "Usuario actualizado correctamente"}
	MsgUserSaveFailed  = [2]string{"Could not save the user", "Error al guardar usuario"}
	MsgUserLoadFailed  = [2]string{"Could not load the user", "No se pudo cargar el usuario"}
	MsgCredentialsReq  = [2]string{"Email and password are required", "Correo y contraseña son obligatorios"}
	MsgLoginOK         = [2]string{"Signed in", "Inicio de sesión exitoso"}
	MsgLoginFailed     = [2]string{"Login failed", "Error en el inicio de sesión"}
	MsgRequestsFailed  = [2]string{"Could not load the requests", "No se pudieron cargar las solicitudes"}
	MsgLoggedOut       = [2]string{"Session closed", "Sesión cerrada"}
	MsgPasswordMissing = [2]string{"The password is required", "La contraseña es obligatoria"}
	MsgPasswordMatch   = [2]string{"The passwords do not match", "Las contraseñas no coinciden"}
)

// Text picks the message for lang.
func Text(msg [2]string, lang string) string {
	if errno.IsSpanish(lang) {
		return msg[1]
	}
	return msg[0]
}

// invalid returns a validation error carrying both translations of msg.
func invalid(msg [2]string) *errno.Errno {
	return errno.ErrValidation.WithMessages(msg[0], msg[1])
}

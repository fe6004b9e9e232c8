package command

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/anota/internal/store"
)

// User-facing reply strings. The bot speaks Spanish; keep every
// message here so the command handlers stay free of literals.
const (
	msgStoreUnavailable    = "No pude completar eso ahora mismo. Inténtalo de nuevo en un momento."
	msgFallbackUnavailable = "Lo siento, ahora mismo no puedo responder a eso. Escribe \"ayuda\" para ver lo que sé hacer."

	msgEmptyNote       = "La nota está vacía. Usa: nota <texto>"
	msgEmptySearch     = "Dime qué buscar. Usa: buscar <texto>"
	msgNoteNotFound    = "No existe esa nota. Revisa el número con \"notas\"."
	msgArchiveNotFound = "No existe esa nota archivada. Revisa el número con \"archivadas\"."
	msgNoNotes         = "No tienes notas todavía. Crea una con: nota <texto>"
	msgNoArchived      = "No tienes notas archivadas."
	msgNoReminders     = "No tienes recordatorios pendientes."

	msgBadEditFormat     = "Formato: editar nota <número>: <texto nuevo>"
	msgBadDeleteFormat   = "Formato: borrar nota <número>"
	msgBadArchiveFormat  = "Formato: archivar nota <número>"
	msgBadUnarchive      = "Formato: desarchivar nota <número>"
	msgBadTagFormat      = "Formato: listar #etiqueta"
	msgBadReminderFormat = "Formato: recuerda \"<texto>\" AAAA-MM-DD HH:MM (hora UTC)"
	msgBadDateTime       = "No entendí la fecha. Usa AAAA-MM-DD HH:MM en formato 24 h, por ejemplo: recuerda \"pagar alquiler\" 2025-09-22 18:00"
	msgBadRemDelete      = "Formato: borrar recordatorio <número>"
	msgRemNotFound       = "No existe ese recordatorio. Revisa el número con \"recordatorios\"."
	msgBadOrdinal        = "El número tiene que ser 1 o mayor."
)

const helpText = `Hola, soy Anota 📝 Esto es lo que sé hacer:

nota <texto> — guardar una nota (usa #etiquetas si quieres)
notas — ver tus notas activas
archivadas — ver tus notas archivadas
listar #etiqueta — notas con esa etiqueta
buscar <texto> — buscar en tus notas
editar nota <n>: <texto> — reescribir una nota
borrar nota <n> — eliminar una nota
archivar nota <n> / desarchivar nota <n>
recuerda "<texto>" AAAA-MM-DD HH:MM — programar un recordatorio (UTC)
recordatorios — ver recordatorios pendientes
borrar recordatorio <n>
stats — tus números

Cualquier otra cosa y simplemente charlamos.`

// renderNotes formats an ordinal-numbered note listing.
func renderNotes(header string, notes []store.Note) string {
	var b strings.Builder
	b.WriteString(header)
	for i, n := range notes {
		fmt.Fprintf(&b, "\n%d. %s", i+1, n.Body)
	}
	return b.String()
}

// renderReminders formats the pending-reminder listing with due times.
func renderReminders(reminders []store.Reminder) string {
	var b strings.Builder
	b.WriteString("Recordatorios pendientes:")
	for i, r := range reminders {
		fmt.Fprintf(&b, "\n%d. %s — %s UTC", i+1, r.Body, r.DueAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

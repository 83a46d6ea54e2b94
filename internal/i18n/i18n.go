// Package i18n carries the user-facing message catalogs. English and
// Spanish ship inside the binary; a locales directory can override them.
package i18n

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations builds the message bundle. An empty localesDir selects
// the built-in catalogs; otherwise every active.*.toml file in the
// directory is loaded and at least one must exist.
func NewTranslations(defaultLang string, localesDir string) (*Translations, error) {
	if defaultLang == "" {
		return nil, errors.New("language must not be empty")
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if localesDir == "" {
		bundle.MustParseMessageFileBytes([]byte(messagesEN), "active.en.toml")
		bundle.MustParseMessageFileBytes([]byte(messagesES), "active.es.toml")
	} else {
		files, err := filepath.Glob(filepath.Join(localesDir, "active.*.toml"))
		if err != nil {
			return nil, fmt.Errorf("error reading locales: %w", err)
		}
		if len(files) == 0 {
			return nil, errors.New("no translation files found")
		}
		for _, file := range files {
			if _, err := bundle.LoadMessageFile(file); err != nil {
				return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
			}
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var messagesEN = `
	[app_usage]
	other = "Create and update Jira issues from YAML templates"

	[app_description]
	other = "mate-jira drives Jira Cloud from the terminal: generate YAML templates from live field metadata, validate them locally and submit them as issues."

	[help_command_usage]
	other = "Show help"

	[flag_verbose]
	other = "Log progress information"

	[flag_debug]
	other = "Log debug details and source locations"

	[issue_command_description]
	other = "Create, update and inspect issues"

	[issue_create_description]
	other = "Create an issue from a YAML template"

	[issue_update_description]
	other = "Update an existing issue from a YAML template"

	[issue_show_description]
	other = "Show an issue"

	[template_command_description]
	other = "Work with issue templates"

	[template_generate_description]
	other = "Generate a starter template from tracker metadata"

	[fields_command_description]
	other = "Inspect field metadata"

	[fields_list_description]
	other = "List fields for a project and issue type"

	[cache_command_description]
	other = "Manage the field metadata cache"

	[cache_show_description]
	other = "Show cached metadata entries"

	[cache_clear_description]
	other = "Remove cached metadata"

	[config_command_description]
	other = "Manage CLI configuration"

	[config_init_description]
	other = "Create the configuration file with defaults"

	[config_show_description]
	other = "Show the current configuration"

	[config_set_jira_description]
	other = "Store the Jira connection settings"

	[config_set_lang_description]
	other = "Switch the CLI language"

	[update_command_description]
	other = "Update mate-jira to the latest release"

	[update_check_description]
	other = "Check whether a newer release exists"

	[issue_created]
	other = "Issue created: {{.Key}}"

	[issue_url]
	other = "View it at: {{.URL}}"

	[updating_issue]
	other = "Updating issue {{.Key}}..."

	[issue_updated]
	other = "Issue {{.Key}} updated"

	[fetching_issue]
	other = "Fetching {{.Key}}..."

	[dry_run_payload]
	other = "Dry run. The payload below was NOT submitted:"

	[missing_required_fields]
	one = "{{.Count}} required field is missing:"
	other = "{{.Count}} required fields are missing:"

	[validation_skipped]
	other = "Required-field validation skipped"

	[operation_cancelled]
	other = "Operation cancelled"

	[fetching_metadata]
	other = "Fetching field metadata for {{.Project}}/{{.IssueType}}..."

	[template_written]
	other = "Template written to {{.Path}}"

	[discovered_fields]
	one = "Discovered {{.Count}} field"
	other = "Discovered {{.Count}} fields"

	[fields_for]
	other = "Fields for {{.Project}}/{{.IssueType}}"

	[cache_dir]
	other = "Cache directory: {{.Dir}}"

	[cache_empty]
	other = "The metadata cache is empty"

	[cache_entries]
	one = "{{.Count}} cached entry"
	other = "{{.Count}} cached entries"

	[cache_cleared]
	other = "Metadata cache cleared"

	[cache_entry_removed]
	other = "Removed cached metadata for {{.Project}}/{{.IssueType}}"

	[config_initialized]
	other = "Configuration ready at {{.Path}}"

	[current_config]
	other = "Current configuration"

	[jira_configured]
	other = "Jira connection configured for {{.URL}}"

	[language_set]
	other = "Language set to {{.Lang}}"

	[update_available]
	other = "Version {{.Latest}} is available (current: {{.Current}})"

	[update_latest]
	other = "You are on the latest version ({{.Current}})"

	[update_download]
	other = "Download: {{.URL}}"

	[update_checking]
	other = "Checking for updates..."

	[update_hint]
	other = "Run: {{.Command}}"

	[update_method_not_detected]
	other = "Could not detect how this binary was installed."

	[update_tool_missing]
	other = "{{.Tool}} is not available on PATH"

	[update_failed]
	other = "Update failed"

	[update_success]
	other = "Updated to {{.Version}}"

	[updating_cli]
	other = "Updating mate-jira..."

	[flag_template]
	other = "Path to the YAML issue template"

	[flag_project]
	other = "Project key (overrides the template and the configured default)"

	[flag_issue_type]
	other = "Issue type name (overrides the template and the configured default)"

	[flag_interactive]
	other = "Prompt for placeholder values even when stdin is not a terminal"

	[flag_no_interactive]
	other = "Fail instead of prompting when placeholders remain"

	[flag_skip_validation]
	other = "Skip required-field validation"

	[flag_refresh]
	other = "Re-fetch field metadata instead of using the cache"

	[flag_dry_run]
	other = "Print the payload without submitting it"

	[flag_output]
	other = "Write the template to this path instead of stdout"

	[flag_required_only]
	other = "Show only required fields"

	[flag_json]
	other = "Print the raw JSON document"

	[flag_all_entries]
	other = "Remove every cached entry"

	[flag_jira_url]
	other = "Jira site URL, e.g. https://your-site.atlassian.net"

	[flag_jira_email]
	other = "Account email for API authentication"

	[flag_jira_token]
	other = "API token, created at id.atlassian.com"

	[error_conflicting_modes]
	other = "Pass only one of --interactive / --no-interactive"

	[error_issue_key_argument]
	other = "Give exactly one issue key, e.g. CORE-42"

	[field_summary]
	other = "Summary"

	[field_status]
	other = "Status"

	[field_type]
	other = "Type"

	[field_assignee]
	other = "Assignee"

	[field_priority]
	other = "Priority"

	[field_labels]
	other = "Labels"

	[config_field_language]
	other = "Language"

	[config_field_default_project]
	other = "Default project"

	[config_field_default_issue_type]
	other = "Default issue type"

	[config_field_url]
	other = "Jira URL"

	[config_field_email]
	other = "Email"

	[config_field_token]
	other = "API token"

	[config_not_set]
	other = "(not set)"

	[init_intro]
	other = "Let's connect mate-jira to your Jira site. Press Enter to keep a current value."

	[init_prompt_url]
	other = "Jira site URL"

	[init_prompt_email]
	other = "Account email"

	[init_prompt_token]
	other = "API token"

	[init_prompt_project]
	other = "Default project key (optional)"

	[init_prompt_issue_type]
	other = "Default issue type"

	[init_prompt_language]
	other = "Language (en/es)"

	[cache_clear_confirm]
	other = "Remove all cached metadata?"

	[cache_clear_needs_target]
	other = "Pass --project and --type, or --all"

	[config_edit_description]
	other = "Open the configuration file in your editor"

	[config_edit_invalid]
	other = "The edited file is not a valid configuration"

	[config_updated]
	other = "Configuration updated"

	[error_no_editor]
	other = "No editor found. Set $EDITOR or install nano or vim"

	[error_opening_editor]
	other = "Could not open the editor"

	[error_jira_flags_required]
	other = "Pass --url, --email and --token"

	[testing_jira_connection]
	other = "Testing the Jira connection..."

	[jira_connection_valid]
	other = "Jira connection OK"

	[jira_connection_failed]
	other = "Could not reach Jira"

	[jira_connected_as]
	other = "Authenticated as {{.User}}"

	[jira_saved_unverified]
	other = "Credentials saved without verification"

	[init_language_invalid]
	other = "Unsupported language, keeping {{.Lang}}"

	[ui_error.try_suggestion]
	other = "💡 Try: "
	`

var messagesES = `
	[app_usage]
	other = "Crear y actualizar issues de Jira desde plantillas YAML"

	[app_description]
	other = "mate-jira maneja Jira Cloud desde la terminal: genera plantillas YAML a partir de los metadatos de campos, las valida localmente y las envía como issues."

	[help_command_usage]
	other = "Mostrar ayuda"

	[flag_verbose]
	other = "Mostrar información de progreso"

	[flag_debug]
	other = "Mostrar detalles de depuración y ubicaciones en el código"

	[issue_command_description]
	other = "Crear, actualizar e inspeccionar issues"

	[issue_create_description]
	other = "Crear un issue desde una plantilla YAML"

	[issue_update_description]
	other = "Actualizar un issue existente desde una plantilla YAML"

	[issue_show_description]
	other = "Mostrar un issue"

	[template_command_description]
	other = "Trabajar con plantillas de issues"

	[template_generate_description]
	other = "Generar una plantilla inicial a partir de los metadatos del tracker"

	[fields_command_description]
	other = "Inspeccionar metadatos de campos"

	[fields_list_description]
	other = "Listar los campos de un proyecto y tipo de issue"

	[cache_command_description]
	other = "Administrar la caché de metadatos de campos"

	[cache_show_description]
	other = "Mostrar las entradas de metadatos en caché"

	[cache_clear_description]
	other = "Eliminar metadatos en caché"

	[config_command_description]
	other = "Administrar la configuración del CLI"

	[config_init_description]
	other = "Crear el archivo de configuración con valores por defecto"

	[config_show_description]
	other = "Mostrar la configuración actual"

	[config_set_jira_description]
	other = "Guardar los datos de conexión a Jira"

	[config_set_lang_description]
	other = "Cambiar el idioma del CLI"

	[update_command_description]
	other = "Actualizar mate-jira a la última versión"

	[update_check_description]
	other = "Verificar si existe una versión más nueva"

	[issue_created]
	other = "Issue creado: {{.Key}}"

	[issue_url]
	other = "Velo en: {{.URL}}"

	[updating_issue]
	other = "Actualizando issue {{.Key}}..."

	[issue_updated]
	other = "Issue {{.Key}} actualizado"

	[fetching_issue]
	other = "Obteniendo {{.Key}}..."

	[dry_run_payload]
	other = "Simulación. El siguiente payload NO fue enviado:"

	[missing_required_fields]
	one = "Falta {{.Count}} campo obligatorio:"
	other = "Faltan {{.Count}} campos obligatorios:"

	[validation_skipped]
	other = "Validación de campos obligatorios omitida"

	[operation_cancelled]
	other = "Operación cancelada"

	[fetching_metadata]
	other = "Obteniendo metadatos de campos para {{.Project}}/{{.IssueType}}..."

	[template_written]
	other = "Plantilla escrita en {{.Path}}"

	[discovered_fields]
	one = "Se descubrió {{.Count}} campo"
	other = "Se descubrieron {{.Count}} campos"

	[fields_for]
	other = "Campos de {{.Project}}/{{.IssueType}}"

	[cache_dir]
	other = "Directorio de caché: {{.Dir}}"

	[cache_empty]
	other = "La caché de metadatos está vacía"

	[cache_entries]
	one = "{{.Count}} entrada en caché"
	other = "{{.Count}} entradas en caché"

	[cache_cleared]
	other = "Caché de metadatos limpiada"

	[cache_entry_removed]
	other = "Se eliminó la caché de metadatos de {{.Project}}/{{.IssueType}}"

	[config_initialized]
	other = "Configuración lista en {{.Path}}"

	[current_config]
	other = "Configuración actual"

	[jira_configured]
	other = "Conexión a Jira configurada para {{.URL}}"

	[language_set]
	other = "Idioma cambiado a {{.Lang}}"

	[update_available]
	other = "La versión {{.Latest}} está disponible (actual: {{.Current}})"

	[update_latest]
	other = "Estás en la última versión ({{.Current}})"

	[update_download]
	other = "Descarga: {{.URL}}"

	[update_checking]
	other = "Buscando actualizaciones..."

	[update_hint]
	other = "Ejecuta: {{.Command}}"

	[update_method_not_detected]
	other = "No se pudo detectar cómo se instaló este binario."

	[update_tool_missing]
	other = "{{.Tool}} no está disponible en el PATH"

	[update_failed]
	other = "La actualización falló"

	[update_success]
	other = "Actualizado a {{.Version}}"

	[updating_cli]
	other = "Actualizando mate-jira..."

	[flag_template]
	other = "Ruta a la plantilla YAML del issue"

	[flag_project]
	other = "Clave del proyecto (pisa la plantilla y el valor por defecto)"

	[flag_issue_type]
	other = "Nombre del tipo de issue (pisa la plantilla y el valor por defecto)"

	[flag_interactive]
	other = "Preguntar los valores de los placeholders aunque stdin no sea una terminal"

	[flag_no_interactive]
	other = "Fallar en vez de preguntar cuando queden placeholders"

	[flag_skip_validation]
	other = "Omitir la validación de campos requeridos"

	[flag_refresh]
	other = "Volver a descargar la metadata de campos en vez de usar la caché"

	[flag_dry_run]
	other = "Mostrar el payload sin enviarlo"

	[flag_output]
	other = "Escribir la plantilla en esta ruta en vez de stdout"

	[flag_required_only]
	other = "Mostrar solo los campos requeridos"

	[flag_json]
	other = "Mostrar el documento JSON crudo"

	[flag_all_entries]
	other = "Borrar todas las entradas de la caché"

	[flag_jira_url]
	other = "URL del sitio de Jira, p. ej. https://tu-sitio.atlassian.net"

	[flag_jira_email]
	other = "Email de la cuenta para autenticar contra la API"

	[flag_jira_token]
	other = "Token de API, se crea en id.atlassian.com"

	[error_conflicting_modes]
	other = "Usa solo uno de --interactive / --no-interactive"

	[error_issue_key_argument]
	other = "Indica exactamente una clave de issue, p. ej. CORE-42"

	[field_summary]
	other = "Resumen"

	[field_status]
	other = "Estado"

	[field_type]
	other = "Tipo"

	[field_assignee]
	other = "Responsable"

	[field_priority]
	other = "Prioridad"

	[field_labels]
	other = "Etiquetas"

	[config_field_language]
	other = "Idioma"

	[config_field_default_project]
	other = "Proyecto por defecto"

	[config_field_default_issue_type]
	other = "Tipo de issue por defecto"

	[config_field_url]
	other = "URL de Jira"

	[config_field_email]
	other = "Email"

	[config_field_token]
	other = "Token de API"

	[config_not_set]
	other = "(sin configurar)"

	[init_intro]
	other = "Vamos a conectar mate-jira con tu sitio de Jira. Enter mantiene el valor actual."

	[init_prompt_url]
	other = "URL del sitio de Jira"

	[init_prompt_email]
	other = "Email de la cuenta"

	[init_prompt_token]
	other = "Token de API"

	[init_prompt_project]
	other = "Clave del proyecto por defecto (opcional)"

	[init_prompt_issue_type]
	other = "Tipo de issue por defecto"

	[init_prompt_language]
	other = "Idioma (en/es)"

	[cache_clear_confirm]
	other = "¿Borrar toda la metadata cacheada?"

	[cache_clear_needs_target]
	other = "Usa --project y --type, o --all"

	[config_edit_description]
	other = "Abre el archivo de configuración en tu editor"

	[config_edit_invalid]
	other = "El archivo editado no es una configuración válida"

	[config_updated]
	other = "Configuración actualizada"

	[error_no_editor]
	other = "No se encontró un editor. Define $EDITOR o instala nano o vim"

	[error_opening_editor]
	other = "No se pudo abrir el editor"

	[error_jira_flags_required]
	other = "Usa --url, --email y --token"

	[testing_jira_connection]
	other = "Probando la conexión con Jira..."

	[jira_connection_valid]
	other = "Conexión con Jira OK"

	[jira_connection_failed]
	other = "No se pudo conectar con Jira"

	[jira_connected_as]
	other = "Autenticado como {{.User}}"

	[jira_saved_unverified]
	other = "Credenciales guardadas sin verificar"

	[init_language_invalid]
	other = "Idioma no soportado, se mantiene {{.Lang}}"

	[ui_error.try_suggestion]
	other = "💡 Prueba: "
	`

// Package resource implementa el ciclo de vida CRUD genérico de la consola:
// una única máquina de estados parametrizada por tipo de entidad. Las cinco
// instancias concretas (puntos de suministro, lecturas, tarifas, factores,
// impuestos) son configuración, no diseños separados.
package resource

import (
	"context"
	"sync"

	"github.com/naturgy/gas-console/internal/domain/validate"
	"github.com/naturgy/gas-console/internal/infrastructure/gasapi"
	"github.com/naturgy/gas-console/pkg/logger"
)

// Filter parámetros de filtrado. Según la entidad se delegan al servicio
// como query params (List) o se aplican en local sobre la lista ya cargada
// (Match); la distinción la fija cada Definition.
type Filter map[string]string

func (f Filter) clone() Filter {
	out := make(Filter, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Phase estado de carga del controlador.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseLoading   Phase = "loading"
	PhaseLoaded    Phase = "loaded"
	PhaseLoadError Phase = "load_error"
)

// Confirmer capacidad de confirmación inyectada: pregunta al usuario antes de
// un borrado. En tests se sustituye por un stub determinista.
type Confirmer func(ctx context.Context, prompt string) bool

// AcceptAll confirma siempre. Lo usa la capa HTTP: la interfaz ya confirmó
// con el usuario antes de llamar a la consola.
func AcceptAll(context.Context, string) bool { return true }

// Messages textos de las notificaciones de éxito de cada operación.
type Messages struct {
	Created string
	Updated string
	Deleted string
}

// Definition comportamiento de un tipo de entidad: extracción de identidad,
// validación y operaciones contra el transporte. El controlador no conoce
// rutas ni campos; todo entra por aquí.
type Definition[T any] struct {
	Name     string
	Validate func(T) validate.Errors

	// IsNew decide crear-vs-actualizar por presencia de identidad (id
	// subrogado nil → crear). Si es nil, decide el modo de apertura del
	// editor (clave natural siempre presente en el buffer, como el CUPS).
	IsNew func(T) bool

	List   func(ctx context.Context, f Filter) ([]T, error)
	Create func(ctx context.Context, rec T) (T, error)
	// Update nil marca un recurso de solo creación (lecturas).
	Update func(ctx context.Context, rec T) (T, error)
	Delete func(ctx context.Context, rec T) error

	// Match filtra en local sobre la lista cargada. nil = sin filtrado local.
	Match func(rec T, f Filter) bool

	ConfirmPrompt func(rec T) string
	Messages      Messages
}

// Controller máquina de estados de un tipo de entidad:
// Idle → Loading → {Loaded, LoadError}, con sub-estados Saving y Deleting
// que pueden solapar Loaded. Un mutex serializa el estado; se suelta durante
// las llamadas de red (planificación cooperativa, un hilo lógico por instancia).
type Controller[T any] struct {
	def     Definition[T]
	confirm Confirmer
	log     *logger.Logger

	mu           sync.Mutex
	phase        Phase
	items        []T
	hasLoaded    bool
	saving       bool
	deleting     bool
	editing      *T
	editExisting bool
	fieldErrors  validate.Errors
	lastError    string
	notice       string
	filter       Filter
	localFilter  Filter
	loadSeq      uint64
}

// New construye el controlador para una definición.
func New[T any](def Definition[T], confirm Confirmer, log *logger.Logger) *Controller[T] {
	return &Controller[T]{
		def:     def,
		confirm: confirm,
		log:     log,
		phase:   PhaseIdle,
		filter:  Filter{},
	}
}

// Load recarga la lista completa con los filtros delegados al servicio.
// En fallo conserva la lista anterior visible (stale-but-visible) junto al
// indicador de error. Cada Load lleva un token creciente: si mientras estaba
// en vuelo se lanzó otro más reciente, su respuesta se descarta y no pisa la
// lista.
func (c *Controller[T]) Load(ctx context.Context, f Filter) error {
	c.mu.Lock()
	c.loadSeq++
	token := c.loadSeq
	c.phase = PhaseLoading
	c.filter = f.clone()
	c.mu.Unlock()

	items, err := c.def.List(ctx, f)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.loadSeq {
		c.log.Debug().Str("resource", c.def.Name).Msg("respuesta de carga obsoleta descartada")
		return nil
	}
	if err != nil {
		c.phase = PhaseLoadError
		c.lastError = gasapi.UserMessage(err, "Error al cargar")
		c.log.Warn().Str("resource", c.def.Name).Err(err).Msg("fallo al cargar la lista")
		return err
	}
	c.items = items
	c.hasLoaded = true
	c.phase = PhaseLoaded
	return nil
}

// OpenCreate abre el editor con un registro semilla y limpia violaciones
// previas. No toca la lista autoritativa.
func (c *Controller[T]) OpenCreate(seed T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = &seed
	c.editExisting = false
	c.fieldErrors = validate.Errors{}
}

// OpenEdit abre el editor sembrado con un registro existente.
func (c *Controller[T]) OpenEdit(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = &rec
	c.editExisting = true
	c.fieldErrors = validate.Errors{}
}

// SetBuffer reemplaza el contenido del buffer de edición (el formulario).
// No cambia el modo crear/actualizar fijado al abrir el editor.
func (c *Controller[T]) SetBuffer(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return
	}
	c.editing = &rec
}

// CloseEditor descarta el buffer de edición sin guardar.
func (c *Controller[T]) CloseEditor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
	c.editExisting = false
	c.fieldErrors = validate.Errors{}
}

// Save valida el buffer y despacha crear o actualizar. Si hay violaciones no
// se emite ninguna llamada de red y los mensajes quedan por campo. En éxito
// cierra el editor, deja la notificación y recarga la lista completa con el
// último filtro (nunca merge optimista). En fallo el editor queda abierto
// para corregir y reintentar.
func (c *Controller[T]) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.editing == nil {
		c.mu.Unlock()
		return nil
	}
	buf := *c.editing
	if errs := c.def.Validate(buf); !errs.Valid() {
		c.fieldErrors = errs
		c.mu.Unlock()
		return nil
	}
	c.fieldErrors = validate.Errors{}
	isUpdate := c.isUpdate(buf)
	c.saving = true
	f := c.filter.clone()
	c.mu.Unlock()

	var err error
	if isUpdate {
		_, err = c.def.Update(ctx, buf)
	} else {
		_, err = c.def.Create(ctx, buf)
	}

	c.mu.Lock()
	c.saving = false
	if err != nil {
		c.lastError = gasapi.UserMessage(err, "Error al guardar")
		c.mu.Unlock()
		return err
	}
	c.editing = nil
	c.editExisting = false
	if isUpdate {
		c.notice = c.def.Messages.Updated
	} else {
		c.notice = c.def.Messages.Created
	}
	c.mu.Unlock()

	// La recarga solo se emite después de recibir la respuesta de la
	// mutación; su resultado se refleja en el estado, no en este error.
	_ = c.Load(ctx, f)
	return nil
}

// isUpdate se llama con el lock cogido.
func (c *Controller[T]) isUpdate(buf T) bool {
	if c.def.Update == nil {
		return false
	}
	if c.def.IsNew != nil {
		return !c.def.IsNew(buf)
	}
	return c.editExisting
}

// Remove pide confirmación y, si se acepta, elimina el registro y recarga.
// Si el usuario declina no se emite ninguna llamada ni cambia el estado.
// Un fallo de borrado deja la lista intacta.
func (c *Controller[T]) Remove(ctx context.Context, rec T) error {
	if !c.confirm(ctx, c.def.ConfirmPrompt(rec)) {
		return nil
	}

	c.mu.Lock()
	c.deleting = true
	f := c.filter.clone()
	c.mu.Unlock()

	err := c.def.Delete(ctx, rec)

	c.mu.Lock()
	c.deleting = false
	if err != nil {
		c.lastError = gasapi.UserMessage(err, "Error al eliminar")
		c.mu.Unlock()
		return err
	}
	c.notice = c.def.Messages.Deleted
	c.mu.Unlock()

	_ = c.Load(ctx, f)
	return nil
}

// SetLocalFilter fija el filtro local (subcadena/igualdad sobre la lista ya
// cargada). No dispara ninguna recarga.
func (c *Controller[T]) SetLocalFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.localFilter = f.clone()
}

// DismissError limpia el indicador de error.
func (c *Controller[T]) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = ""
}

// DismissNotice limpia la notificación de éxito (cierre del snackbar).
func (c *Controller[T]) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = ""
}

// Snapshot estado observable del controlador para la capa de presentación.
type Snapshot[T any] struct {
	Phase       Phase           `json:"phase"`
	Items       []T             `json:"items"`
	Saving      bool            `json:"saving"`
	Deleting    bool            `json:"deleting"`
	Editing     *T              `json:"editing,omitempty"`
	FieldErrors validate.Errors `json:"fieldErrors,omitempty"`
	Error       string          `json:"error,omitempty"`
	Notice      string          `json:"notice,omitempty"`
}

// Snapshot devuelve una copia del estado observable. La lista devuelta lleva
// el filtro local aplicado; la lista autoritativa interna no se modifica.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, 0, len(c.items))
	if c.def.Match != nil && len(c.localFilter) > 0 {
		for _, it := range c.items {
			if c.def.Match(it, c.localFilter) {
				items = append(items, it)
			}
		}
	} else {
		items = append(items, c.items...)
	}

	var editing *T
	if c.editing != nil {
		v := *c.editing
		editing = &v
	}

	return Snapshot[T]{
		Phase:       c.phase,
		Items:       items,
		Saving:      c.saving,
		Deleting:    c.deleting,
		Editing:     editing,
		FieldErrors: c.fieldErrors,
		Error:       c.lastError,
		Notice:      c.notice,
	}
}

// Package policy implementa el motor de autorización por roles.
//
// La tabla es estática: la decisión depende únicamente de (rol, recurso,
// acción), nunca del contenido de los registros. Centralizarla aquí evita
// re-derivar chequeos ad hoc por endpoint y deja auditable en un solo lugar
// cada asimetría de la política.
package policy

import "github.com/jhoicas/retail-analytics-api/internal/domain/entity"

// Recursos sobre los que decide el motor.
const (
	ResourceProduct     = "product"
	ResourceStore       = "store"
	ResourceSalesRecord = "sales_record"
	ResourceUser        = "user"
)

// Acciones sobre un recurso.
const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type rule struct {
	resource string
	action   string
}

// table es la tabla de decisión completa. Toda combinación ausente se
// deniega (fail-closed).
//
// Asimetría deliberada, portada literal del sistema original: el borrado de
// tiendas pertenece SOLO a SALE_MANAGER; ADMIN no puede borrar tiendas
// aunque sí crea tiendas y borra productos y registros de venta. No
// "armonizar" sin una decisión explícita de producto.
var table = map[string]map[rule]bool{
	entity.RoleAdmin: {
		{ResourceProduct, ActionRead}:       true,
		{ResourceProduct, ActionCreate}:     true,
		{ResourceProduct, ActionUpdate}:     true,
		{ResourceProduct, ActionDelete}:     true,
		{ResourceStore, ActionRead}:         true,
		{ResourceStore, ActionCreate}:       true,
		{ResourceStore, ActionUpdate}:       true,
		{ResourceSalesRecord, ActionRead}:   true,
		{ResourceSalesRecord, ActionCreate}: true,
		{ResourceSalesRecord, ActionUpdate}: true,
		{ResourceSalesRecord, ActionDelete}: true,
		{ResourceUser, ActionRead}:          true,
		{ResourceUser, ActionCreate}:        true,
		{ResourceUser, ActionUpdate}:        true,
		{ResourceUser, ActionDelete}:        true,
	},
	entity.RoleSaleManager: {
		{ResourceProduct, ActionRead}:       true,
		{ResourceProduct, ActionCreate}:     true,
		{ResourceProduct, ActionUpdate}:     true,
		{ResourceStore, ActionRead}:         true,
		{ResourceStore, ActionUpdate}:       true,
		{ResourceStore, ActionDelete}:       true,
		{ResourceSalesRecord, ActionRead}:   true,
		{ResourceSalesRecord, ActionCreate}: true,
		{ResourceSalesRecord, ActionUpdate}: true,
	},
	entity.RoleUser: {
		{ResourceProduct, ActionRead}:     true,
		{ResourceStore, ActionRead}:       true,
		{ResourceSalesRecord, ActionRead}: true,
	},
}

// Authorize decide si el rol puede ejecutar la acción sobre el recurso.
// Función pura y determinista: sin estado oculto, dos invocaciones con la
// misma entrada producen el mismo resultado.
func Authorize(role, resource, action string) bool {
	perms, ok := table[role]
	if !ok {
		return false
	}
	return perms[rule{resource, action}]
}

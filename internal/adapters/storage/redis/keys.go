package redis

import "strconv"

// Todas las claves llevan el prefijo "pets:".
const keyPrefix = "pets:"

// seqKey guarda el último id entregado (INCR).
const seqKey = keyPrefix + "seq"

// idsKey es el Set con todos los ids vivos, para enumerar.
const idsKey = keyPrefix + "ids"

// speciesKey es un Hash species -> cantidad de mascotas. HLEN da las especies distintas.
const speciesKey = keyPrefix + "species"

// petKey devuelve la clave del Hash de una mascota: pets:{id}
func petKey(id int64) string { return keyPrefix + strconv.FormatInt(id, 10) }

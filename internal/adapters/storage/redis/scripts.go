package redis

import goredis "github.com/redis/go-redis/v9"

// saveScript reemplaza el Hash de la mascota y mantiene el contador de especies
// en la misma operación atómica.
//
// KEYS: pet, ids, species, seq
// ARGV: id, name, species, hasAge, age, hasOwner, owner
var saveScript = goredis.NewScript(`
local old = redis.call('HGET', KEYS[1], 'species')
if old then
  if redis.call('HINCRBY', KEYS[3], old, -1) <= 0 then
    redis.call('HDEL', KEYS[3], old)
  end
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], 'id', ARGV[1], 'name', ARGV[2], 'species', ARGV[3])
if ARGV[4] == '1' then
  redis.call('HSET', KEYS[1], 'age', ARGV[5])
end
if ARGV[6] == '1' then
  redis.call('HSET', KEYS[1], 'owner_name', ARGV[7])
end
redis.call('SADD', KEYS[2], ARGV[1])
redis.call('HINCRBY', KEYS[3], ARGV[3], 1)
local seq = tonumber(redis.call('GET', KEYS[4]) or '0')
if tonumber(ARGV[1]) > seq then
  redis.call('SET', KEYS[4], ARGV[1])
end
return 1
`)

// deleteScript borra la mascota y descuenta su especie. Devuelve 0 si no existía.
//
// KEYS: pet, ids, species
// ARGV: id
var deleteScript = goredis.NewScript(`
local old = redis.call('HGET', KEYS[1], 'species')
redis.call('SREM', KEYS[2], ARGV[1])
if not old then
  return 0
end
if redis.call('HINCRBY', KEYS[3], old, -1) <= 0 then
  redis.call('HDEL', KEYS[3], old)
end
redis.call('DEL', KEYS[1])
return 1
`)

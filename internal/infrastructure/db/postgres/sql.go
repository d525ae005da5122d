package postgres

const getEventSQL = `
SELECT id, owner_id, title, status, cancelled,
       start_time, game_type, game_started, max_participants
FROM events
WHERE id = $1
`

const getViewerBookingSQL = `
SELECT public_id, status
FROM bookings
WHERE event_id = $1 AND user_id = $2
ORDER BY created_at DESC
LIMIT 1
`

const countSeatsSQL = `
SELECT
  COUNT(*) FILTER (WHERE status = 'confirmed')              AS booked_seats,
  COUNT(*) FILTER (WHERE status IN ('pending','confirmed')) AS registrations
FROM bookings
WHERE event_id = $1
`

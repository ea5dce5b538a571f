package sqlinline

const QInsertAdminUser = `--sql 62074666-bc43-4dec-96be-1795c58e38bd
insert into admin_users (id, email, password_hash, role)
values ($1::uuid, $2::text, $3::text, $4::text)
returning id, email, password_hash, role, created_at, last_login_at;
`

const QSelectAdminUserByID = `--sql c85c5966-6dc4-425e-9123-64704e54a77f
select id, email, password_hash, role, created_at, last_login_at
from admin_users
where id = $1::uuid;
`

const QSelectAdminUserByEmail = `--sql dcd2624f-fbb1-4d24-9b91-159fb1dc8e61
select id, email, password_hash, role, created_at, last_login_at
from admin_users
where email = $1::text;
`

const QTouchAdminLastLogin = `--sql 52c40539-25e3-4974-8029-d5a876fb9c68
update admin_users
set last_login_at = $2::timestamptz
where id = $1::uuid;
`

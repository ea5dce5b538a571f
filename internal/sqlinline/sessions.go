package sqlinline

const QInsertSession = `--sql 89253246-b8d0-4a9f-8309-95021c449bc7
insert into admin_sessions (id, admin_user_id, token_hash, created_at, expires_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::timestamptz, $4::timestamptz)
returning id;
`

const QSelectLiveSession = `--sql 1b56b4dd-80fe-413e-82f9-a5848199b447
select id, admin_user_id, token_hash, created_at, expires_at, revoked_at
from admin_sessions
where token_hash = $1::text
  and revoked_at is null
  and expires_at > $2::timestamptz;
`

const QRevokeSession = `--sql 3c92374b-e7ff-4967-9416-529d2f1890ab
update admin_sessions
set revoked_at = $2::timestamptz
where token_hash = $1::text
  and revoked_at is null;
`

const QDeleteDeadSessions = `--sql 35fb7d7c-228e-48a4-a6b1-567fd03db631
delete from admin_sessions
where expires_at < $1::timestamptz
   or (revoked_at is not null and revoked_at < $1::timestamptz);
`

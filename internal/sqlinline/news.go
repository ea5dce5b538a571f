package sqlinline

const QResolveNewsSlug = `--sql 5437bbac-1433-459c-99da-9c6aa1ef731f
select id
from news
where slug = $1::text;
`

const QSelectNewsMeta = `--sql 8356d410-d704-4b4c-bcc8-4f608dac34fd
select id, slug, title, coalesce(intro, ''), status, published_at, created_at, updated_at
from news
where id = $1::uuid;
`

const QListPublishedNews = `--sql aee1628c-dd92-4d32-baf7-8a477447b95e
select id, slug, title, coalesce(intro, ''), status, published_at, created_at, updated_at
from news
where status = 'published'
order by published_at desc nulls last
limit $1 offset $2;
`

const QSelectPublishedNewsBySlug = `--sql 2bd1de9d-ae69-4453-815d-ee3a9e9e94ec
select id, slug, title, coalesce(intro, ''), status, published_at, created_at, updated_at
from news
where slug = $1::text
  and status = 'published';
`

const QListNews = `--sql 96d23e9c-c835-450b-a244-db36da79102e
select id, slug, title, coalesce(intro, ''), status, published_at, created_at, updated_at
from news
order by updated_at desc;
`

const QInsertNews = `--sql 1ae5fb93-40f0-47ee-ba72-0aade92bbc59
insert into news (id, slug, title, intro, status, published_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::text, $5::timestamptz)
returning id, slug, title, coalesce(intro, ''), status, published_at, created_at, updated_at;
`

const QUpdateNews = `--sql 78b5de1d-6f9b-412e-9961-e9ab925375fd
update news
set slug = $2::text,
    title = $3::text,
    intro = $4::text,
    status = $5::text,
    published_at = $6::timestamptz,
    updated_at = now()
where id = $1::uuid
returning id, slug, title, coalesce(intro, ''), status, published_at, created_at, updated_at;
`

const QDeleteNews = `--sql 7869057b-ba2d-4ce5-83bc-a6cc65a105a7
delete from news
where id = $1::uuid;
`

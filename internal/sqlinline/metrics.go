package sqlinline

// Counter upserts. Both are single conditional statements so concurrent
// increments on the same key never lose updates.

const QIncrementNewsMetric = `--sql 56a32e60-7316-4563-9cce-f10452cfe20d
insert into news_metrics_daily (day, news_id, views, shares)
values ($1::date, $2::uuid, $3::int, $4::int)
on conflict (day, news_id) do update set
    views = news_metrics_daily.views + excluded.views,
    shares = news_metrics_daily.shares + excluded.shares;
`

const QIncrementTagMetric = `--sql aa2fa8cc-2ec9-425d-8791-04801420a26c
insert into ui_metrics_daily (day, tag, clicks)
values ($1::date, $2::text, $3::int)
on conflict (day, tag) do update set
    clicks = ui_metrics_daily.clicks + excluded.clicks;
`

const QOverviewNewsTotals = `--sql e4d8e8c6-e6e3-4552-aed0-453f26e58c31
select coalesce(sum(views), 0), coalesce(sum(shares), 0)
from news_metrics_daily
where day >= $1::date;
`

const QOverviewTagTotals = `--sql 81ad3870-411c-48da-97da-3451d6967004
select coalesce(sum(clicks), 0)
from ui_metrics_daily
where day >= $1::date;
`

const QTimeseriesViews = `--sql 1938544e-2af9-43ce-8bc8-e018620bf9cd
select day, coalesce(sum(views), 0)
from news_metrics_daily
where day >= $1::date
group by day
order by day asc;
`

const QTimeseriesShares = `--sql 6964a7a0-2b02-4c31-a5ec-bcf25dee2a91
select day, coalesce(sum(shares), 0)
from news_metrics_daily
where day >= $1::date
group by day
order by day asc;
`

const QTimeseriesClicks = `--sql ce1d66cf-ec42-4fba-8687-a2def932814d
select day, coalesce(sum(clicks), 0)
from ui_metrics_daily
where day >= $1::date
group by day
order by day asc;
`

// Rankings order by total descending with the group key ascending as the
// deterministic tie-break.

const QRankingViews = `--sql c6028a21-6e5d-4556-89fd-d14dee797e3c
select news_id, coalesce(sum(views), 0) as total
from news_metrics_daily
where day >= $1::date
group by news_id
order by total desc, news_id asc
limit $2;
`

const QRankingShares = `--sql 9e35d3b4-c051-411d-99f6-8a568d0bdae2
select news_id, coalesce(sum(shares), 0) as total
from news_metrics_daily
where day >= $1::date
group by news_id
order by total desc, news_id asc
limit $2;
`

const QRankingClicks = `--sql a817312b-4668-40cd-8258-09a3aceacfca
select tag, coalesce(sum(clicks), 0) as total
from ui_metrics_daily
where day >= $1::date
group by tag
order by total desc, tag asc
limit $2;
`

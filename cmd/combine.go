package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storeshot-kit/internal/config"
	"github.com/shouni/go-storeshot-kit/internal/runner"
	"github.com/shouni/go-storeshot-kit/pkg/batch"
	"github.com/shouni/go-storeshot-kit/pkg/compose"
	"github.com/shouni/go-storeshot-kit/pkg/domain"
	"github.com/shouni/go-storeshot-kit/pkg/i18n"
	"github.com/shouni/go-storeshot-kit/pkg/render"
)

// combineCmd は、フレーム済みの 4 枚を背景とタイトルで 1 枚に結合するステージなのだ。
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "フレーム済み 4 枚を背景 + タイトル付きの 1 枚に結合するのだ。",
	Long: `frame ステージの出力 4 枠を背景画像の上へ横並びに配置し、ロケール別の
タイトル文言をタイトル帯へ描画して、ロケールごとのコンポジットを書き出すのだ。
タイトルは translations/<locale>.json から読み、欠けはプレースホルダで補うのだよ。`,
	RunE: combineCommand,
}

// init は、combine コマンド固有のスタイル・配置フラグを定義するのだ。
func init() {
	style := compose.DefaultStyle()
	f := combineCmd.Flags()
	f.StringVarP(&opts.Background, "background", "b", "", "背景画像のパスなのだ（空なら既定の background.png）。")
	f.IntVar(&opts.Spacing, "spacing", config.DefaultSpacing, "画像間と外周の間隔 (px) なのだ。")
	f.Float64Var(&opts.FontSize, "font-size", style.FontSize, "タイトルのフォントサイズなのだ。")
	f.StringVar(&opts.TitleColor, "title-color", style.Color, "タイトル本体の色 (#RRGGBB) なのだ。")
	f.StringVar(&opts.ShadowColor, "shadow-color", style.ShadowColor, "タイトル影の色 (#RRGGBB) なのだ。")
	f.IntVar(&opts.ShadowOffset, "shadow-offset", style.ShadowOffset, "タイトル影のオフセット (px) なのだ。")
	f.IntVar(&opts.TitleSpacing, "title-spacing", style.TitleSpacing, "タイトル帯と画像列の間隔 (px) なのだ。")
	f.BoolVar(&opts.CenterInQuarters, "center-in-quarters", false, "キャンバス 4 等分の各区画中央へ配置するのだ。")
	f.Float64Var(&opts.IPhoneScale, "scale-iphone", config.DefaultIPhoneScale, "iPhone のフレーム済み画像へ掛ける拡縮率なのだ。")
	f.Float64Var(&opts.IPadScale, "scale-ipad", config.DefaultIPadScale, "iPad のフレーム済み画像へ掛ける拡縮率なのだ。")
	f.StringVarP(&opts.Titles, "titles", "t", "", "カンマ区切りの明示タイトルなのだ（翻訳データより優先）。")
}

// combineCommand は、combine サブコマンドの実行ロジック本体なのだ。
func combineCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	device, err := domain.ParseDevice(opts.Device)
	if err != nil {
		return err
	}

	cfg := config.LoadConfig()
	cfg.Options = opts
	settings, err := config.LoadSettings(opts.SettingsFile)
	if err != nil {
		return err
	}
	applyTitleFlags(cmd, &settings.Title)
	// フラグで上書きされた色も、バッチを始める前に設定エラーとして弾くのだ
	if err := settings.Title.Validate(); err != nil {
		return err
	}

	background := opts.Background
	if background == "" {
		background = cfg.BackgroundFile
	}

	slog.Info("結合モードを起動するのだ！",
		"device", device.String(),
		"locale", opts.Locale,
		"background", background,
		"output", cfg.CombinedDir)

	svc := render.NewService(opts.MaxWorkers)
	combiner := compose.NewCombiner(svc, i18n.NewLoader(cfg.TranslationsDir))
	b := batch.NewRunner(config.DefaultCombineChunkSize, opts.Interval)

	template := compose.Options{
		BackgroundPath:   background,
		FramedRoot:       cfg.FramedDir,
		OutputRoot:       cfg.CombinedDir,
		Spacing:          opts.Spacing,
		Titles:           runner.ParseExplicitTitles(opts.Titles),
		Style:            settings.Title,
		CenterInQuarters: opts.CenterInQuarters,
		ScaleFactors: map[domain.Device]float64{
			domain.DeviceIPhone: opts.IPhoneScale,
			domain.DeviceIPad:   opts.IPadScale,
		},
	}
	return runner.NewCombineRunner(cfg, combiner, b, template).Run(ctx, device, opts.Locale)
}

// applyTitleFlags は、明示されたフラグだけを YAML 設定の上へ重ねるのだ。
func applyTitleFlags(cmd *cobra.Command, style *compose.Style) {
	if cmd.Flags().Changed("font-size") {
		style.FontSize = opts.FontSize
	}
	if cmd.Flags().Changed("title-color") {
		style.Color = opts.TitleColor
	}
	if cmd.Flags().Changed("shadow-color") {
		style.ShadowColor = opts.ShadowColor
	}
	if cmd.Flags().Changed("shadow-offset") {
		style.ShadowOffset = opts.ShadowOffset
	}
	if cmd.Flags().Changed("title-spacing") {
		style.TitleSpacing = opts.TitleSpacing
	}
}
